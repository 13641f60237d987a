package model

// All lists every model managed by auto-migration.
func All() []interface{} {
	return []interface{}{
		&ClientModel{},
		&AnalysisModel{},
		&ObligationModel{},
		&AppointmentModel{},
		&EmailQueueModel{},
	}
}
