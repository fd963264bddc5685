package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cetime-core/internal/infrastructure/mailer"
	"cetime-core/internal/modules/notification/dto"
)

type fakeSender struct {
	mu       sync.Mutex
	messages []mailer.Message
	err      error
}

func (f *fakeSender) Send(ctx context.Context, msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
	return f.err
}

func (f *fakeSender) sent() []mailer.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mailer.Message{}, f.messages...)
}

type fakeJournal struct {
	mu      sync.Mutex
	entries []dto.JournalEntry
	err     error
}

func (f *fakeJournal) Record(ctx context.Context, entry dto.JournalEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return f.err
}

func (f *fakeJournal) recorded() []dto.JournalEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dto.JournalEntry{}, f.entries...)
}

func TestDispatcher_AdminNewReservation(t *testing.T) {
	sender := &fakeSender{}
	journal := &fakeJournal{}
	d := newDispatcher(sender, journal, "admin@cetime.tn")

	d.AdminNewReservation("Société Essais", time.Date(2026, 3, 12, 10, 30, 0, 0, time.UTC), 60, "en_attente")
	d.Flush()

	messages := sender.sent()
	require.Len(t, messages, 1)
	assert.Equal(t, []string{"admin@cetime.tn"}, messages[0].To)
	assert.Equal(t, AdminNewReservationSubject, messages[0].Subject)
	assert.Contains(t, messages[0].HTML, "Société Essais")
	assert.Contains(t, messages[0].HTML, "12/03/2026 10:30")
	assert.Contains(t, messages[0].HTML, "60 minutes")

	entries := journal.recorded()
	require.Len(t, entries, 1)
	assert.Equal(t, dto.StatusSent, entries[0].Status)
	assert.Equal(t, dto.KindAdmin, entries[0].Kind)
	assert.Empty(t, entries[0].Error)
}

func TestDispatcher_ClientCancellation(t *testing.T) {
	sender := &fakeSender{}
	journal := &fakeJournal{}
	d := newDispatcher(sender, journal, "admin@cetime.tn")

	d.ClientCancellation("client@acme.tn", "ACME", time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC), 30)
	d.Flush()

	messages := sender.sent()
	require.Len(t, messages, 1)
	assert.Equal(t, []string{"client@acme.tn"}, messages[0].To)
	assert.Equal(t, SubjectClientCancellation, messages[0].Subject)
	assert.Contains(t, messages[0].HTML, "annulé")

	entries := journal.recorded()
	require.Len(t, entries, 1)
	assert.Equal(t, dto.KindClient, entries[0].Kind)
}

func TestDispatcher_SkipsEmptyRecipient(t *testing.T) {
	sender := &fakeSender{}
	journal := &fakeJournal{}
	d := newDispatcher(sender, journal, "")

	d.AdminNewReservation("ACME", time.Now(), 30, "valide")
	d.ClientConfirmation("", "ACME", time.Now(), 30)
	d.Flush()

	assert.Empty(t, sender.sent())
	assert.Empty(t, journal.recorded())
}

func TestDispatcher_SendFailureJournaled(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp indisponible")}
	journal := &fakeJournal{}
	d := newDispatcher(sender, journal, "admin@cetime.tn")

	d.ClientValidation("client@acme.tn", "ACME", time.Now(), 45)
	d.Flush()

	entries := journal.recorded()
	require.Len(t, entries, 1)
	assert.Equal(t, dto.StatusFailed, entries[0].Status)
	assert.Equal(t, "smtp indisponible", entries[0].Error)
}

func TestDispatcher_JournalFailureDoesNotPanic(t *testing.T) {
	sender := &fakeSender{}
	journal := &fakeJournal{err: errors.New("mongo indisponible")}
	d := newDispatcher(sender, journal, "admin@cetime.tn")

	d.ClientReassignment("client@acme.tn", "ACME", time.Now(), 45, "Agent B")
	d.Flush()

	require.Len(t, sender.sent(), 1)
}

func TestTemplates_EscapeHTML(t *testing.T) {
	body := renderClientConfirmation("<script>ACME</script>", time.Now(), 30)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestTemplates_ReassignmentDefaultAgent(t *testing.T) {
	body := renderClientReassignment("ACME", time.Now(), 30, "")
	assert.Contains(t, body, "Notre équipe")
}
