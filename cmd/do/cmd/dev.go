package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/hairstudio/salon/internal/db"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

func DevCmd() *cobra.Command {
	var port string

	devCmd := &cobra.Command{
		Use:   "dev",
		Short: "Migrate the database and run the server under air with live reload",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := os.Stat(".env")
			if errors.Is(err, os.ErrNotExist) {
				fmt.Println("No .env found. Copy .env.example to .env and fill in the required values.")
				return err
			}

			err = withDatabase(func(driver string, database *sqlx.DB) error {
				return db.RunMigrations(cmd.Context(), database.DB, driver)
			})
			if err != nil {
				return err
			}

			if !templUpToDate(pagesDir) {
				if err := runTempl(pagesDir); err != nil {
					return err
				}
			}

			return runAir(port)
		},
	}

	devCmd.Flags().StringVar(&port, "port", "8000", "port the browser connects to")
	return devCmd
}

// runAir replaces the current process with air. The app listens on an internal
// port behind air's reload proxy.
func runAir(port string) error {
	airPath, err := exec.LookPath("air")
	if err != nil {
		fmt.Println("air is not installed: go install github.com/air-verse/air@latest")
		return err
	}

	args := []string{
		"air",
		"-c", "/dev/null",
		"-root", ".",
		"-build.cmd", "templ generate -path internal/ui/pages && go build -o ./tmp/server ./cmd/server",
		"-build.bin", "./tmp/server",
		"-build.exclude_dir", "_examples,tmp,instance,static/uploads",
		"-build.exclude_regex", "_templ.go$|_test.go$",
		"-build.include_ext", "go,templ,css,js,md,sql",
		"-build.send_interrupt", "true",
		"-proxy.enabled", "true",
		"-proxy.proxy_port", port,
		"-proxy.app_port", "8090",
	}

	env := append(os.Environ(), "PORT=8090", "APP_ENV=development")
	return syscall.Exec(airPath, args, env)
}
