package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cetime-core/internal/app/config"
	"cetime-core/internal/infrastructure/mailer"
	"cetime-core/internal/modules/notification/dto"
)

// Délai maximum accordé à un envoi SMTP + sa journalisation
const dispatchTimeout = 15 * time.Second

// Journal abstrait la persistance des tentatives d'envoi
type Journal interface {
	Record(ctx context.Context, entry dto.JournalEntry) error
}

// Dispatcher envoie les emails du domaine rendez-vous de manière
// asynchrone. Une seule tentative par message, les échecs sont
// journalisés puis ignorés.
type Dispatcher struct {
	sender     mailer.EmailSender
	journal    Journal
	adminEmail string
	wg         sync.WaitGroup
}

func NewDispatcher(sender mailer.EmailSender, journal *JournalService, cfg *config.Config) *Dispatcher {
	return newDispatcher(sender, journal, cfg.GetMailer().AdminEmail)
}

func newDispatcher(sender mailer.EmailSender, journal Journal, adminEmail string) *Dispatcher {
	return &Dispatcher{
		sender:     sender,
		journal:    journal,
		adminEmail: adminEmail,
	}
}

// AdminNewReservation notifie l'administrateur d'une nouvelle demande
func (d *Dispatcher) AdminNewReservation(clientName string, dateRdv time.Time, duree int, statut string) {
	body := renderAdminNewReservation(clientName, dateRdv, duree, statut)
	d.async(dto.KindAdmin, d.adminEmail, AdminNewReservationSubject, body)
}

// ClientConfirmation notifie le client d'une réservation confirmée automatiquement
func (d *Dispatcher) ClientConfirmation(to, clientName string, dateRdv time.Time, duree int) {
	d.async(dto.KindClient, to, SubjectClientConfirmation, renderClientConfirmation(clientName, dateRdv, duree))
}

// ClientValidation notifie le client d'une validation par un agent
func (d *Dispatcher) ClientValidation(to, clientName string, dateRdv time.Time, duree int) {
	d.async(dto.KindClient, to, SubjectClientValidation, renderClientValidation(clientName, dateRdv, duree))
}

// ClientReassignment notifie le client d'un changement d'agent
func (d *Dispatcher) ClientReassignment(to, clientName string, dateRdv time.Time, duree int, agentName string) {
	d.async(dto.KindClient, to, SubjectClientReassignment, renderClientReassignment(clientName, dateRdv, duree, agentName))
}

// ClientCancellation notifie le client de l'annulation de son rendez-vous
func (d *Dispatcher) ClientCancellation(to, clientName string, dateRdv time.Time, duree int) {
	d.async(dto.KindClient, to, SubjectClientCancellation, renderClientCancellation(clientName, dateRdv, duree))
}

// Flush attend la fin des envois en cours
func (d *Dispatcher) Flush() {
	d.wg.Wait()
}

func (d *Dispatcher) async(kind, to, subject, body string) {
	if to == "" {
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.deliver(kind, to, subject, body)
	}()
}

// deliver effectue une tentative d'envoi puis journalise le résultat
func (d *Dispatcher) deliver(kind, to, subject, body string) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	entry := dto.JournalEntry{
		Recipient: to,
		Subject:   subject,
		Kind:      kind,
		Status:    dto.StatusSent,
		CreatedAt: time.Now().UTC(),
	}

	err := d.sender.Send(ctx, mailer.Message{To: []string{to}, Subject: subject, HTML: body})
	if err != nil {
		entry.Status = dto.StatusFailed
		entry.Error = err.Error()
		slog.Error("Échec envoi notification",
			"recipient", to,
			"subject", subject,
			"error", err.Error(),
		)
	}

	if jerr := d.journal.Record(ctx, entry); jerr != nil {
		slog.Warn("Échec journalisation notification",
			"recipient", to,
			"error", jerr.Error(),
		)
	}
}
