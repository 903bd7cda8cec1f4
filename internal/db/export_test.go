package db

var SqlitePath = sqlitePath
