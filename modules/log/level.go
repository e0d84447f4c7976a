// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import "strings"

// Level is the level of the logger
type Level int

// Log levels, from least to most severe
const (
	TRACE Level = iota
	DEBUG
	INFO
	WARN
	ERROR
	FATAL
	NONE
)

var levelNames = map[Level]string{
	TRACE: "TRACE",
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
	NONE:  "NONE",
}

// String returns the name of the level
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "INFO"
}

// LevelFromString returns the level for the given name, INFO if the name is unknown
func LevelFromString(s string) Level {
	for level, name := range levelNames {
		if strings.EqualFold(name, s) {
			return level
		}
	}
	return INFO
}
