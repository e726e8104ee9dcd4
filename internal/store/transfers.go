package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/database"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/models"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/normalize"
)

// Transfers converts directory contacts into company note history.
//
// A conversion runs in two phases. Phase one copies the contact's notes
// under the company, phase two deletes the originals and the contact. A
// noteTransfers marker is written before phase one and advanced after each
// phase, so a conversion interrupted between phases is finished by
// ResumeTransfers instead of leaving duplicates behind. Phase two copies
// any note added since phase one before it deletes, and only deletes
// originals that have a copy. Unfinished markers carry open: true, which a
// unique partial index keeps to one per contact.
type Transfers struct {
	markers  *mongo.Collection
	notes    *mongo.Collection
	contacts *mongo.Collection
	users    *mongo.Collection
}

func NewTransfers(db *mongo.Database) *Transfers {
	return &Transfers{
		markers:  db.Collection(database.NoteTransfersCollection),
		notes:    db.Collection(database.NotesCollection),
		contacts: db.Collection(database.DirectoryContactsCollection),
		users:    db.Collection(database.UsersCollection),
	}
}

type ConversionResult struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	TransferredCount int    `json:"transferredCount"`
}

const msgTransferRunning = "Bu rehber kaydı firmaya aktarılıyor, işlem tamamlanana kadar değiştirilemez."

var decodeTransfer = decodeWith[models.NoteTransfer](models.NoteTransferSchema)

// ConvertContactToCompany moves every note of the contact under the company
// and removes the contact. The company must already exist.
func (s *Transfers) ConvertContactToCompany(ctx context.Context, contactID, companyID string) (ConversionResult, error) {
	if contactID == "" || companyID == "" {
		return ConversionResult{}, invalid("Rehber kaydı ve firma zorunludur.")
	}
	if n, err := s.users.CountDocuments(ctx, bson.M{"_id": companyID}, options.Count().SetLimit(1)); err != nil {
		return ConversionResult{}, err
	} else if n == 0 {
		return ConversionResult{}, notFound(msgCompanyNotFound)
	}

	marker, err := s.pending(ctx, contactID)
	switch {
	case err == nil:
		if marker.CompanyID != companyID {
			return ConversionResult{}, conflict("Bu rehber kaydı başka bir firmaya aktarılıyor.")
		}
		zap.L().Info("resuming unfinished note transfer",
			zap.String("transferId", marker.ID),
			zap.String("state", string(marker.State)))
	case errors.Is(err, mongo.ErrNoDocuments):
		marker, err = s.begin(ctx, contactID, companyID)
		if err != nil {
			return ConversionResult{}, err
		}
	default:
		return ConversionResult{}, err
	}

	count, err := s.run(ctx, marker)
	if err != nil {
		zap.L().Error("note transfer failed",
			zap.String("transferId", marker.ID),
			zap.String("contactId", contactID),
			zap.String("companyId", companyID),
			zap.Error(err))
		return ConversionResult{}, err
	}

	return ConversionResult{
		Success:          true,
		Message:          fmt.Sprintf("%d not firmaya aktarıldı ve rehber kaydı silindi.", count),
		TransferredCount: count,
	}, nil
}

// ResumeTransfers finishes every conversion left unfinished by an earlier
// process and returns how many were completed.
func (s *Transfers) ResumeTransfers(ctx context.Context) (int, error) {
	markers, err := findAll(ctx, s.markers, bson.M{"state": bson.M{"$ne": string(models.TransferDone)}}, nil, decodeTransfer)
	if err != nil {
		return 0, err
	}

	done := 0
	var errs []error
	for _, m := range markers {
		count, err := s.run(ctx, m)
		if err != nil {
			zap.L().Error("resume note transfer failed", zap.String("transferId", m.ID), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		zap.L().Info("note transfer resumed",
			zap.String("transferId", m.ID),
			zap.String("contactId", m.ContactID),
			zap.Int("transferred", count))
		done++
	}
	return done, errors.Join(errs...)
}

func (s *Transfers) pending(ctx context.Context, contactID string) (models.NoteTransfer, error) {
	var raw bson.M
	err := s.markers.FindOne(ctx, bson.M{
		"contactId": contactID,
		"state":     bson.M{"$ne": string(models.TransferDone)},
	}).Decode(&raw)
	if err != nil {
		return models.NoteTransfer{}, err
	}
	return decodeTransfer(normalize.ID(raw), raw)
}

func (s *Transfers) begin(ctx context.Context, contactID, companyID string) (models.NoteTransfer, error) {
	if n, err := s.contacts.CountDocuments(ctx, bson.M{"_id": contactID}, options.Count().SetLimit(1)); err != nil {
		return models.NoteTransfer{}, err
	} else if n == 0 {
		return models.NoteTransfer{}, notFound(msgContactNotFound)
	}

	now := clock()
	m := models.NoteTransfer{
		ID:        newID(),
		ContactID: contactID,
		CompanyID: companyID,
		State:     models.TransferCopying,
		Open:      true,
	}
	stored, err := storageDocument(m, models.NoteTransferSchema)
	if err != nil {
		return models.NoteTransfer{}, err
	}
	stored["createdAt"] = now
	if _, err := s.markers.InsertOne(ctx, stored); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.NoteTransfer{}, conflict(msgTransferRunning)
		}
		return models.NoteTransfer{}, err
	}
	m.CreatedAt = normalize.FormatTime(now)
	return m, nil
}

// run advances m to done and returns the number of notes copied under it.
func (s *Transfers) run(ctx context.Context, m models.NoteTransfer) (int, error) {
	client := s.markers.Database().Client()

	if m.State == models.TransferCopying {
		if err := database.WithTransaction(ctx, client, func(ctx context.Context) error {
			return s.copyNotes(ctx, m)
		}); err != nil {
			return 0, fmt.Errorf("copy notes: %w", err)
		}
		m.State = models.TransferCopied
	}

	if m.State == models.TransferCopied {
		if err := database.WithTransaction(ctx, client, func(ctx context.Context) error {
			return s.removeSource(ctx, m)
		}); err != nil {
			return 0, fmt.Errorf("remove contact: %w", err)
		}
	}

	n, err := s.notes.CountDocuments(ctx, bson.M{"transferId": m.ID})
	return int(n), err
}

// copyNotes runs phase one and records how many notes were copied.
func (s *Transfers) copyNotes(ctx context.Context, m models.NoteTransfer) error {
	copied, err := s.copyMissing(ctx, m)
	if err != nil {
		return err
	}
	_, err = s.markers.UpdateByID(ctx, m.ID, bson.M{"$set": bson.M{
		"state":       string(models.TransferCopied),
		"copiedCount": copied,
		"updatedAt":   clock(),
	}})
	return err
}

// copyMissing upserts one copy per current contact note, keyed by transfer
// and source note, so repeating it never duplicates a copy. It returns the
// number of source notes seen.
func (s *Transfers) copyMissing(ctx context.Context, m models.NoteTransfer) (int, error) {
	cursor, err := s.notes.Find(ctx, bson.M{
		"parentType": string(models.NoteParentContact),
		"parentId":   m.ContactID,
	})
	if err != nil {
		return 0, err
	}
	var sources []bson.M
	if err := cursor.All(ctx, &sources); err != nil {
		return 0, err
	}
	if len(sources) == 0 {
		return 0, nil
	}

	writes := make([]mongo.WriteModel, 0, len(sources))
	for _, src := range sources {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"transferId": m.ID, "sourceNoteId": normalize.ID(src)}).
			SetUpdate(bson.M{"$setOnInsert": noteCopy(src, m.CompanyID)}).
			SetUpsert(true))
	}
	if _, err := s.notes.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
		return 0, err
	}
	return len(sources), nil
}

// noteCopy returns the fields of src re-parented under companyID with a new
// id. The transfer keys come from the upsert filter.
func noteCopy(src bson.M, companyID string) bson.M {
	out := bson.M{}
	for k, v := range src {
		switch k {
		case "_id", "parentType", "parentId", "transferId", "sourceNoteId":
			continue
		}
		out[k] = v
	}
	out["_id"] = newID()
	out["parentType"] = string(models.NoteParentUser)
	out["parentId"] = companyID
	return out
}

// removeSource runs phase two. Notes written to the contact after phase one
// are copied first; only originals with a copy under this transfer are
// deleted.
func (s *Transfers) removeSource(ctx context.Context, m models.NoteTransfer) error {
	if _, err := s.copyMissing(ctx, m); err != nil {
		return err
	}

	copiedIDs, err := s.notes.Distinct(ctx, "sourceNoteId", bson.M{"transferId": m.ID})
	if err != nil {
		return err
	}
	if len(copiedIDs) > 0 {
		if _, err := s.notes.DeleteMany(ctx, bson.M{
			"_id":        bson.M{"$in": copiedIDs},
			"parentType": string(models.NoteParentContact),
			"parentId":   m.ContactID,
		}); err != nil {
			return err
		}
	}

	if _, err := s.contacts.DeleteOne(ctx, bson.M{"_id": m.ContactID}); err != nil {
		return err
	}
	_, err = s.markers.UpdateByID(ctx, m.ID, bson.M{
		"$set":   bson.M{"state": string(models.TransferDone), "updatedAt": clock()},
		"$unset": bson.M{"open": ""},
	})
	return err
}

// transferOpen reports whether contactID has an unfinished conversion.
func transferOpen(ctx context.Context, markers *mongo.Collection, contactID string) (bool, error) {
	n, err := markers.CountDocuments(ctx, bson.M{
		"contactId": contactID,
		"state":     bson.M{"$ne": string(models.TransferDone)},
	}, options.Count().SetLimit(1))
	return n > 0, err
}
