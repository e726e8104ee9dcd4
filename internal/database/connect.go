package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Collection names.
const (
	UsersCollection              = "users"
	ListingsCollection           = "listings"
	SponsorsCollection           = "sponsors"
	MessagesCollection           = "messages"
	AdminsCollection             = "admins"
	MembershipRequestsCollection = "membershipRequests"
	DirectoryContactsCollection  = "directoryContacts"
	NotesCollection              = "notes"
	NoteTransfersCollection      = "noteTransfers"
	TransportOffersCollection    = "transportOffers"

	SettingsVehicleTypesCollection   = "settingsVehicleTypes"
	SettingsCargoTypesCollection     = "settingsCargoTypes"
	SettingsAuthDocsCollection       = "settingsAuthDocs"
	SettingsTransportTypesCollection = "settingsTransportTypes"
	SettingsMembershipsCollection    = "settingsMemberships"
	SettingsAnnouncementsCollection  = "settingsAnnouncements"
)

// TurkishLocale is the collation locale used for name ordering.
const TurkishLocale = "tr"

func Connect(uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	zap.L().Info("mongo connected")
	return client, nil
}
