package services

import "time"

// Notifier abstrait l'envoi des notifications du cycle de vie des
// rendez-vous. Implémenté par le dispatcher du module notification.
type Notifier interface {
	AdminNewReservation(clientName string, dateRdv time.Time, duree int, statut string)
	ClientConfirmation(to, clientName string, dateRdv time.Time, duree int)
	ClientValidation(to, clientName string, dateRdv time.Time, duree int)
	ClientReassignment(to, clientName string, dateRdv time.Time, duree int, agentName string)
	ClientCancellation(to, clientName string, dateRdv time.Time, duree int)
}
