// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"fmt"
	"net/url"

	"gopkg.in/ini.v1"
)

// DatabaseType is the type of the configured database
type DatabaseType string

func (t DatabaseType) String() string {
	return string(t)
}

// IsSQLite3 reports whether the configured database is sqlite3
func (t DatabaseType) IsSQLite3() bool {
	return t == "sqlite3"
}

// IsMySQL reports whether the configured database is mysql
func (t DatabaseType) IsMySQL() bool {
	return t == "mysql"
}

// IsPostgreSQL reports whether the configured database is postgres
func (t DatabaseType) IsPostgreSQL() bool {
	return t == "postgres"
}

// Database holds the database settings
var Database = struct {
	Type    DatabaseType
	Host    string
	Name    string
	User    string
	Passwd  string
	SSLMode string
	Path    string
	LogSQL  bool
}{}

func loadDatabaseFrom(cfg *ini.File) {
	sec := cfg.Section("database")
	Database.Type = DatabaseType(sec.Key("DB_TYPE").MustString("sqlite3"))
	Database.Host = sec.Key("HOST").MustString("127.0.0.1:3306")
	Database.Name = sec.Key("NAME").MustString("kanbo")
	Database.User = sec.Key("USER").MustString("kanbo")
	Database.Passwd = sec.Key("PASSWD").String()
	Database.SSLMode = sec.Key("SSL_MODE").MustString("disable")
	Database.Path = sec.Key("PATH").MustString("data/kanbo.db")
	Database.LogSQL = sec.Key("LOG_SQL").MustBool(false)
}

// DBConnStr returns the xorm connection string for the configured database
func DBConnStr() (string, error) {
	switch {
	case Database.Type.IsSQLite3():
		return fmt.Sprintf("file:%s?cache=shared&mode=rwc&_busy_timeout=500&_txlock=immediate", Database.Path), nil
	case Database.Type.IsMySQL():
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=true",
			Database.User, Database.Passwd, Database.Host, Database.Name), nil
	case Database.Type.IsPostgreSQL():
		return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
			url.PathEscape(Database.User), url.PathEscape(Database.Passwd), Database.Host, Database.Name, Database.SSLMode), nil
	}
	return "", fmt.Errorf("unknown database type: %s", Database.Type)
}
