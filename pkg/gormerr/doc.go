// Package gormerr maps gorm errors onto SQLSTATE diagnostics.
//
// Record turns gorm's sentinel errors (gorm.ErrRecordNotFound,
// gorm.ErrDuplicatedKey, ...) into diagnostic records for the driver
// adapters, which fall back to it when no driver error is present. Plugin
// installs the translation as gorm callbacks so every *gorm.DB call returns
// classified errors:
//
//	db, _ := gorm.Open(dialector, &gorm.Config{})
//	_ = db.Use(gormerr.NewPlugin("odbcerr", translator.TranslateError))
package gormerr
