package postgres

import (
	"gorm.io/gorm"
)

// DB returns the underlying GORM DB Client instance. Errors returned by its
// calls are already classified.
func (p *Postgres) DB() *gorm.DB {
	return p.client
}

// Translator returns the translator installed on the connection.
func (p *Postgres) Translator() *Translator {
	return p.translator
}
