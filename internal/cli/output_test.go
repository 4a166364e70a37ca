package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   int64
		currency string
		want     string
	}{
		{0, "USD", "USD 0.00"},
		{6000, "USD", "USD 60.00"},
		{129999, "USD", "USD 1,299.99"},
		{126000000, "ETB", "ETB 1,260,000.00"},
		{-2050, "USD", "USD -20.50"},
		{5, "", "0.05"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, formatMoney(tt.amount, tt.currency))
		})
	}
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 10))
	require.Equal(t, "sub-12...", truncate("sub-1234567890", 9))
	require.Equal(t, "ab", truncate("abcdef", 2))
}

func TestFormatDate(t *testing.T) {
	require.Equal(t, "-", formatDate(time.Time{}))
	d := time.Date(2026, time.March, 4, 12, 0, 0, 0, time.Local)
	require.Equal(t, "Mar 4, 2026", formatDate(d))
}

func TestFormatStatus_NoColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	require.Equal(t, "ACTIVE", formatStatus("ACTIVE"))
	require.Equal(t, "unknown", formatStatus("unknown"))
}

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable("ID", "PLAN")
	table.writer = &buf
	table.AddRow("1", "Gym Monthly")
	table.AddRow("22", "Studio Yoga")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "ID  PLAN", strings.TrimSpace(lines[0]))
	require.Equal(t, "--  ----", strings.TrimSpace(lines[1]))
	require.True(t, strings.HasPrefix(lines[3], "22  Studio Yoga"))
}

func TestPrintJSONAndYAML(t *testing.T) {
	data := map[string]interface{}{"id": "gym-monthly", "price": 6000}

	var j bytes.Buffer
	require.NoError(t, printJSON(&j, data))
	require.JSONEq(t, `{"id":"gym-monthly","price":6000}`, j.String())

	var y bytes.Buffer
	require.NoError(t, printYAML(&y, data))
	require.Contains(t, y.String(), "id: gym-monthly")
	require.Contains(t, y.String(), "price: 6000")
}
