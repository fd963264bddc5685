package queries

// DocumentQueries regroupe les requêtes SQL du registre des documents
var DocumentQueries = struct {
	Insert           string
	GetByID          string
	ListAll          string
	ListByPrestation string
}{
	/**
	 * Enregistre un document
	 * Paramètres: $1 = prestation_id, $2 = type, $3 = original_name,
	 *             $4 = file_path, $5 = file_size, $6 = mime_type,
	 *             $7 = prestation_name, $8 = client_name
	 */
	Insert: `
		INSERT INTO documents (
			prestation_id, type, original_name, file_path,
			file_size, mime_type, prestation_name, client_name
		)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''))
		RETURNING id, upload_date
	`,

	/**
	 * Paramètres: $1 = document_id
	 */
	GetByID: `
		SELECT id, prestation_id, COALESCE(type, ''), COALESCE(original_name, ''),
		       COALESCE(file_path, ''), COALESCE(file_size, 0), COALESCE(mime_type, ''),
		       COALESCE(prestation_name, ''), COALESCE(client_name, ''), upload_date
		FROM documents
		WHERE id = $1
	`,

	ListAll: `
		SELECT id, prestation_id, COALESCE(type, ''), COALESCE(original_name, ''),
		       COALESCE(file_path, ''), COALESCE(file_size, 0), COALESCE(mime_type, ''),
		       COALESCE(prestation_name, ''), COALESCE(client_name, ''), upload_date
		FROM documents
		ORDER BY id DESC
	`,

	/**
	 * Documents d'une prestation, plus récents en premier
	 * Paramètres: $1 = prestation_id
	 */
	ListByPrestation: `
		SELECT id, prestation_id, COALESCE(type, ''), COALESCE(original_name, ''),
		       COALESCE(file_path, ''), COALESCE(file_size, 0), COALESCE(mime_type, ''),
		       COALESCE(prestation_name, ''), COALESCE(client_name, ''), upload_date
		FROM documents
		WHERE prestation_id = $1
		ORDER BY upload_date DESC
	`,
}
