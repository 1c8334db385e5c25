package feedback

import (
	"context"
	"encoding/json"
	"time"

	apperrors "github.com/jrsteele09/clientconnect/internal/errors"
	"github.com/jrsteele09/clientconnect/sessions"
	"github.com/rs/zerolog/log"
)

// FlashKey is the browser storage key holding a toast raised before a redirect.
const FlashKey = "toast"

type flash struct {
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

// SaveFlash stores a toast to be shown on the browser's next page render.
func SaveFlash(ctx context.Context, storage sessions.Storage, message string, kind Kind) error {
	if message == "" {
		return nil
	}
	data, err := json.Marshal(flash{Message: message, Kind: kind})
	if err != nil {
		return apperrors.Wrapf(err, "[feedback SaveFlash] encode")
	}
	return storage.Set(ctx, FlashKey, data)
}

// TakeFlash moves a stored flash into toast, showing it from now. It reports whether there was one.
func TakeFlash(ctx context.Context, storage sessions.Storage, toast *Toast, now time.Time) bool {
	data, err := storage.Get(ctx, FlashKey)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrStorageKeyNotFound) {
			log.Warn().Err(err).Msg("flash read failed")
		}
		return false
	}
	if err := storage.Delete(ctx, FlashKey); err != nil {
		log.Warn().Err(err).Msg("flash delete failed")
	}

	var f flash
	if err := json.Unmarshal(data, &f); err != nil || f.Message == "" {
		return false
	}
	toast.Show(f.Message, f.Kind, now)
	return true
}
