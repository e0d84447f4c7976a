// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package db

import (
	"fmt"
	"sync/atomic"

	"code.kanbo.io/kanbo/modules/log"

	xormlog "xorm.io/xorm/log"
)

// XORMLogBridge a logger bridge from Logger to xorm
type XORMLogBridge struct {
	showSQL atomic.Bool
	logger  *log.Logger
}

// NewXORMLogger inits a log bridge for xorm
func NewXORMLogger(showSQL bool) xormlog.Logger {
	l := &XORMLogBridge{logger: log.GetLogger("xorm")}
	l.showSQL.Store(showSQL)
	return l
}

// Debug show debug log
func (l *XORMLogBridge) Debug(v ...any) {
	l.logger.Debug("%s", fmt.Sprint(v...))
}

// Debugf show debug log
func (l *XORMLogBridge) Debugf(format string, v ...any) {
	l.logger.Debug(format, v...)
}

// Error show error log
func (l *XORMLogBridge) Error(v ...any) {
	l.logger.Error("%s", fmt.Sprint(v...))
}

// Errorf show error log
func (l *XORMLogBridge) Errorf(format string, v ...any) {
	l.logger.Error(format, v...)
}

// Info show information level log
func (l *XORMLogBridge) Info(v ...any) {
	l.logger.Info("%s", fmt.Sprint(v...))
}

// Infof show information level log
func (l *XORMLogBridge) Infof(format string, v ...any) {
	l.logger.Info(format, v...)
}

// Warn show warning log
func (l *XORMLogBridge) Warn(v ...any) {
	l.logger.Warn("%s", fmt.Sprint(v...))
}

// Warnf show warning log
func (l *XORMLogBridge) Warnf(format string, v ...any) {
	l.logger.Warn(format, v...)
}

// Level get logger level
func (l *XORMLogBridge) Level() xormlog.LogLevel {
	switch {
	case l.logger.LevelEnabled(log.TRACE), l.logger.LevelEnabled(log.DEBUG):
		return xormlog.LOG_DEBUG
	case l.logger.LevelEnabled(log.INFO):
		return xormlog.LOG_INFO
	case l.logger.LevelEnabled(log.WARN):
		return xormlog.LOG_WARNING
	}
	return xormlog.LOG_ERR
}

// SetLevel set the logger level
func (l *XORMLogBridge) SetLevel(lvl xormlog.LogLevel) {
}

// ShowSQL set if record SQL
func (l *XORMLogBridge) ShowSQL(show ...bool) {
	if len(show) == 0 {
		show = []bool{true}
	}
	l.showSQL.Store(show[0])
}

// IsShowSQL if record SQL
func (l *XORMLogBridge) IsShowSQL() bool {
	return l.showSQL.Load()
}
