package mariadb

import (
	"gorm.io/gorm"
)

// DB returns the underlying GORM DB Client instance. Errors returned by its
// calls are already classified.
func (m *MariaDB) DB() *gorm.DB {
	return m.client
}

// Translator returns the translator installed on the connection.
func (m *MariaDB) Translator() *Translator {
	return m.translator
}
