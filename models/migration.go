package models

import (
	"bitbucket.org/restgest/restgest_backend/config"
)

func MigrateTable() error {
	db := config.GetDB()
	return db.AutoMigrate(
		&Comida{},
		&Bebida{},
		&MaterialSala{},
		&Student{},
		&Service{},
		&Quebra{},
		&QuebraComida{},
		&QuebraBebida{},
		&QuebraMaterial{},
		&User{},
	)
}
