package store

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"expense-manager-go-be/models"
)

// RevokeToken puts a token id on the persistent blocklist until its natural
// expiry. Revoking twice is a no-op. Expired entries are swept on the way in
// so the table stays bounded without a background job.
func (s *Store) RevokeToken(jti string, expiresAt time.Time) error {
	if jti == "" {
		return ErrValidation
	}
	return s.transact(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.RevokedToken{JTI: jti, ExpiresAt: expiresAt}).Error
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		return tx.Where("expires_at < ?", time.Now()).Delete(&models.RevokedToken{}).Error
	})
}

// IsTokenRevoked reports whether a token id is on the blocklist. Entries past
// their expiry don't count; the token is already dead on its own.
func (s *Store) IsTokenRevoked(jti string) (bool, error) {
	var count int64
	err := s.db.Model(&models.RevokedToken{}).
		Where("jti = ? AND expires_at >= ?", jti, time.Now()).
		Count(&count).Error
	if err != nil {
		return false, wrapErr(err)
	}
	return count > 0, nil
}
