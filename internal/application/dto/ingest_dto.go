package dto

// RowErrorDTO fila descartada durante la ingesta.
type RowErrorDTO struct {
	Line   int    `json:"line"`
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// IngestResultDTO respuesta de POST /api/ingest.
type IngestResultDTO struct {
	BatchID       string        `json:"batch_id"`
	Source        string        `json:"source"`
	RowsProcessed int           `json:"rows_processed"`
	RowsInserted  int           `json:"rows_inserted"`
	RowsSkipped   int           `json:"rows_skipped"`
	RowsInvalid   int           `json:"rows_invalid"`
	RowsDuplicate int           `json:"rows_duplicate"`
	Errors        []RowErrorDTO `json:"errors"`
}
