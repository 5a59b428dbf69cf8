package sync

import "errors"

// ErrJournalDisabled is returned when run history is requested without a journal.
var ErrJournalDisabled = errors.New("run journal is disabled")
