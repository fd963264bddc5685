package services

import (
	"fmt"
	"html"
	"time"
)

// Format d'affichage des dates dans les emails
const emailDateLayout = "02/01/2006 15:04"

// AdminNewReservationSubject est le sujet envoyé à l'administrateur
// lors d'une nouvelle demande de rendez-vous
const AdminNewReservationSubject = "Nouvelle demande de rendez-vous"

const (
	SubjectClientConfirmation = "Confirmation de votre rendez-vous CETIME"
	SubjectClientValidation   = "Votre rendez-vous CETIME est confirmé"
	SubjectClientReassignment = "Mise à jour de votre rendez-vous CETIME"
	SubjectClientCancellation = "Annulation de votre rendez-vous CETIME"
)

// renderAdminNewReservation produit le tableau récapitulatif envoyé à l'admin
func renderAdminNewReservation(clientName string, dateRdv time.Time, duree int, statut string) string {
	name := html.EscapeString(clientName)
	return fmt.Sprintf(`
      <div style="font-family: 'Segoe UI', sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px;">
        <h2 style="color: #3b82f6; text-align: center;">Nouvelle demande de rendez-vous</h2>
        <p style="font-size: 16px; margin-bottom: 20px;">
          Une nouvelle demande de rendez-vous a été soumise par <strong>%s</strong> :
        </p>
        <table style="width: 100%%; font-size: 15px; border-collapse: collapse;">
          <tr>
            <td style="padding: 8px; font-weight: bold;">Nom du client :</td>
            <td style="padding: 8px;">%s</td>
          </tr>
          <tr style="background-color: #f9f9f9;">
            <td style="padding: 8px; font-weight: bold;">Date RDV :</td>
            <td style="padding: 8px;">%s</td>
          </tr>
          <tr>
            <td style="padding: 8px; font-weight: bold;">Durée :</td>
            <td style="padding: 8px;">%d minutes</td>
          </tr>
          <tr style="background-color: #f9f9f9;">
            <td style="padding: 8px; font-weight: bold;">Statut :</td>
            <td style="padding: 8px;">%s</td>
          </tr>
        </table>
        <p style="margin-top: 30px; font-size: 14px; color: #777; text-align: center;">
          CETIME Plateforme – Notification automatique
        </p>
      </div>`,
		name, name, dateRdv.Format(emailDateLayout), duree, html.EscapeString(statut))
}

func renderClientConfirmation(clientName string, dateRdv time.Time, duree int) string {
	return fmt.Sprintf(`
          <div style="font-family: Arial, sans-serif; font-size: 16px;">
            <p>Bonjour %s,</p>
            <p>Votre rendez-vous a été confirmé avec succès.</p>
            <p><strong>Date :</strong> %s</p>
            <p><strong>Durée :</strong> %d minutes</p>
            <p>Merci pour votre confiance.<br/>L'équipe CETIME</p>
          </div>`,
		html.EscapeString(clientName), dateRdv.Format(emailDateLayout), duree)
}

func renderClientValidation(clientName string, dateRdv time.Time, duree int) string {
	return fmt.Sprintf(`
          <div style="font-family: Arial, sans-serif; font-size: 16px;">
            <p>Bonjour %s,</p>
            <p>Votre rendez-vous a été validé par notre équipe.</p>
            <p><strong>Date :</strong> %s</p>
            <p><strong>Durée :</strong> %d minutes</p>
            <p>Merci pour votre confiance.<br/>L'équipe CETIME</p>
          </div>`,
		html.EscapeString(clientName), dateRdv.Format(emailDateLayout), duree)
}

func renderClientReassignment(clientName string, dateRdv time.Time, duree int, agentName string) string {
	if agentName == "" {
		agentName = "Notre équipe"
	}
	return fmt.Sprintf(`
          <div style="font-family: Arial, sans-serif; font-size: 16px;">
            <p>Bonjour %s,</p>
            <p>Votre rendez-vous a été mis à jour.</p>
            <p><strong>Date :</strong> %s</p>
            <p><strong>Durée :</strong> %d minutes</p>
            <p><strong>Nouvel agent :</strong> %s</p>
            <p>Merci pour votre confiance.<br/>L'équipe CETIME</p>
          </div>`,
		html.EscapeString(clientName), dateRdv.Format(emailDateLayout), duree, html.EscapeString(agentName))
}

func renderClientCancellation(clientName string, dateRdv time.Time, duree int) string {
	return fmt.Sprintf(`
          <div style="font-family: Arial, sans-serif; font-size: 16px;">
            <p>Bonjour %s,</p>
            <p>Votre rendez-vous a été annulé.</p>
            <p><strong>Date :</strong> %s</p>
            <p><strong>Durée :</strong> %d minutes</p>
            <p>Pour toute question, contactez notre équipe.<br/>L'équipe CETIME</p>
          </div>`,
		html.EscapeString(clientName), dateRdv.Format(emailDateLayout), duree)
}
