package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/partyhub/party-ui-api/internal/data"
)

func TestPrintAuthEventsRendersColumns(t *testing.T) {
	var buf bytes.Buffer

	events := []data.AuthEventRecord{
		{
			Kind:        "login_succeeded",
			Role:        "hr_admin",
			PrincipalID: 42,
			Detail:      "admin",
			CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	require.NoError(t, printAuthEvents(&buf, events))

	out := buf.String()
	require.Contains(t, out, "CREATED")
	require.Contains(t, out, "login_succeeded")
	require.Contains(t, out, "hr_admin")
	require.Contains(t, out, "42")
}

func TestPrintAuthEventsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printAuthEvents(&buf, nil))
	require.Contains(t, buf.String(), "No auth events recorded")
}

func TestPrintEventCountsSortsKinds(t *testing.T) {
	var buf bytes.Buffer

	counts := map[string]int64{
		"logout":          2,
		"login_succeeded": 5,
	}

	require.NoError(t, printEventCounts(&buf, 24*time.Hour, counts))

	out := buf.String()
	require.Contains(t, out, "login_succeeded")
	require.Contains(t, out, "logout")
	require.Less(t, // login_succeeded sorts before logout
		bytes.Index(buf.Bytes(), []byte("login_succeeded")),
		bytes.Index(buf.Bytes(), []byte("logout")),
	)
	require.Contains(t, out, "24h0m0s")
}
