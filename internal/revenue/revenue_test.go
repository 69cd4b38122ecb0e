package revenue

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tillpos/internal/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	seen []money.Money
}

func (n *recordingNotifier) OnTotalRevenue(amount money.Money) error {
	n.seen = append(n.seen, amount)
	return nil
}

type failingNotifier struct{ called bool }

func (n *failingNotifier) OnTotalRevenue(money.Money) error {
	n.called = true
	return errors.New("sink offline")
}

type panickingNotifier struct{}

func (panickingNotifier) OnTotalRevenue(money.Money) error {
	panic("boom")
}

func TestNotifyOrderAndIsolation(t *testing.T) {
	first := &recordingNotifier{}
	bad := &failingNotifier{}
	last := &recordingNotifier{}

	Notify([]Notifier{first, bad, panickingNotifier{}, last}, money.MustNew("74.70"))

	require.Len(t, first.seen, 1)
	assert.True(t, bad.called)
	require.Len(t, last.seen, 1, "a failing notifier must not block later ones")
	assert.True(t, last.seen[0].Equal(money.MustNew("74.70")))
}

func TestFileNotifierAccumulates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "total_revenue.log")
	n := NewFileNotifier(path)

	require.NoError(t, n.OnTotalRevenue(money.MustNew("100")))
	require.NoError(t, n.OnTotalRevenue(money.MustNew("25.5")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Total Revenue: 100:00")
	assert.Contains(t, lines[1], "Total Revenue: 125:50")
}
