// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a custom handler and a log level from the
// CARTCTL_LOG env variable.
func InitLogger() {
	level := strings.ToUpper(os.Getenv("CARTCTL_LOG"))
	if level == "" {
		level = "ERROR"
	}
	log.SetHandler(&CustomHandler{})
	log.SetLevelFromString(level)
}

// CustomHandler formats log messages and writes them to Writer, or stderr when
// Writer is nil. Stdout is left alone since it carries command output.
type CustomHandler struct {
	Writer io.Writer
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	w := h.Writer
	if w == nil {
		w = os.Stderr
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())

	var fields []string
	for _, name := range e.Fields.Names() {
		fields = append(fields, fmt.Sprintf("%s=%v", name, e.Fields.Get(name)))
	}

	if len(fields) > 0 {
		fmt.Fprintf(w, "%s %.1s %s %s\n", timestamp, level, e.Message, strings.Join(fields, " "))
		return nil
	}
	fmt.Fprintf(w, "%s %.1s %s\n", timestamp, level, e.Message)
	return nil
}
