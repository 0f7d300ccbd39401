// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &CustomHandler{Writer: &buf}

	logger := &log.Logger{Handler: h, Level: log.DebugLevel}
	logger.WithField("id", 7).Warn("slot unreadable")

	out := buf.String()
	assert.Contains(t, out, " W slot unreadable")
	assert.Contains(t, out, "id=7")
}

func TestInitLogger_Level(t *testing.T) {
	t.Setenv("CARTCTL_LOG", "debug")
	InitLogger()
	assert.Equal(t, log.DebugLevel, log.Log.(*log.Logger).Level)

	t.Setenv("CARTCTL_LOG", "")
	InitLogger()
	assert.Equal(t, log.ErrorLevel, log.Log.(*log.Logger).Level)
}
