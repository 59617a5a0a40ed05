package models

import (
	"log"

	"github.com/helloakshay27/rental_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Lease{}, &Parking{}, &AgreementService{}, &SigningAuthority{},
		&Document{},
		&Property{}, &Tenant{},
		&CustomFieldDefinition{},
		&User{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
