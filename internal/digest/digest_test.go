package digest

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpetrenko/todo-service/internal/models"
)

type fakeSource struct {
	entries []models.DigestEntry
	err     error
}

func (f *fakeSource) ListIncompleteDigest(context.Context) ([]models.DigestEntry, error) {
	return f.entries, f.err
}

type fakeMailer struct {
	sent    map[string][]string
	failFor string
}

func (f *fakeMailer) SendTaskDigest(to string, titles []string) error {
	if to == f.failFor {
		return errors.New("mailbox unavailable")
	}
	if f.sent == nil {
		f.sent = map[string][]string{}
	}
	f.sent[to] = titles
	return nil
}

func noopLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestScheduler_Run(t *testing.T) {
	source := &fakeSource{entries: []models.DigestEntry{
		{Email: "a@x.com", Titles: []string{"Buy milk", "Walk dog"}},
		{Email: "b@x.com", Titles: []string{"Ship release"}},
	}}
	mailer := &fakeMailer{}

	s, err := NewScheduler("0 8 * * *", source, mailer, noopLogger())
	require.NoError(t, err)

	s.Run()

	assert.Equal(t, []string{"Buy milk", "Walk dog"}, mailer.sent["a@x.com"])
	assert.Equal(t, []string{"Ship release"}, mailer.sent["b@x.com"])
}

func TestScheduler_Run_SkipsFailedRecipients(t *testing.T) {
	source := &fakeSource{entries: []models.DigestEntry{
		{Email: "broken@x.com", Titles: []string{"Buy milk"}},
		{Email: "ok@x.com", Titles: []string{"Ship release"}},
	}}
	mailer := &fakeMailer{failFor: "broken@x.com"}

	s, err := NewScheduler("@daily", source, mailer, noopLogger())
	require.NoError(t, err)

	s.Run()

	assert.NotContains(t, mailer.sent, "broken@x.com")
	assert.Contains(t, mailer.sent, "ok@x.com")
}

func TestScheduler_Run_SourceError(t *testing.T) {
	source := &fakeSource{err: errors.New("db down")}
	mailer := &fakeMailer{}

	s, err := NewScheduler("@daily", source, mailer, noopLogger())
	require.NoError(t, err)

	s.Run()
	assert.Empty(t, mailer.sent)
}

func TestNewScheduler_BadSpec(t *testing.T) {
	_, err := NewScheduler("not a cron spec", &fakeSource{}, &fakeMailer{}, noopLogger())
	require.Error(t, err)
}
