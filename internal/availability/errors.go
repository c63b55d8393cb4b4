package availability

import "errors"

var (
	// ErrInvalidDuration возвращается, когда длительность услуги не кратна
	// шагу слотов партнера (неявное округление запрещено)
	ErrInvalidDuration = errors.New("availability: service duration is not a positive multiple of the slot granularity")
)
