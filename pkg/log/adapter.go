package log

import "github.com/sirupsen/logrus"

// BadgerLogger implements badger.Logger on top of a logrus entry so the
// state database logs with the same fields and level as the rest of md-toc.
type BadgerLogger struct {
	*logrus.Entry
}

// NewBadgerLogger tags entry with the badger component.
func NewBadgerLogger(entry *logrus.Entry) *BadgerLogger {
	return &BadgerLogger{entry.WithField("component", "badger")}
}

func (l *BadgerLogger) Errorf(f string, v ...interface{}) { l.Entry.Errorf(f, v...) }

func (l *BadgerLogger) Warningf(f string, v ...interface{}) { l.Entry.Warningf(f, v...) }

// Infof is demoted to debug; badger is chatty at info level.
func (l *BadgerLogger) Infof(f string, v ...interface{}) { l.Entry.Debugf(f, v...) }

func (l *BadgerLogger) Debugf(f string, v ...interface{}) { l.Entry.Debugf(f, v...) }
