package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/collation"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/database"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/models"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/normalize"
)

const (
	msgSponsorNotFound  = "Sponsorluk bulunamadı."
	msgCompanyNotFound  = "Firma bulunamadı."
	msgSponsorDuplicate = "Bu firma için bu sponsorluk zaten mevcut."
)

type Sponsors struct {
	c     *mongo.Collection
	users *mongo.Collection
}

func NewSponsors(db *mongo.Database) *Sponsors {
	return &Sponsors{
		c:     db.Collection(database.SponsorsCollection),
		users: db.Collection(database.UsersCollection),
	}
}

var decodeSponsor = decodeWith[models.Sponsor](models.SponsorSchema)

// SponsorshipBatch asks for one company to sponsor many countries and
// cities over the same date range.
type SponsorshipBatch struct {
	CompanyID    string   `json:"companyId"`
	CountryCodes []string `json:"countryCodes"`
	CityNames    []string `json:"cityNames"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate,omitempty"`
}

type BatchResult struct {
	Success      bool   `json:"success"`
	AddedCount   int    `json:"addedCount"`
	SkippedCount int    `json:"skippedCount"`
	Message      string `json:"message"`
}

type sponsorTarget struct {
	Type models.EntityType
	Name string
}

func (t sponsorTarget) ref() models.SponsorshipRef {
	return models.SponsorshipRef{Type: t.Type, Name: t.Name}
}

// requestedTargets trims and dedupes the requested countries and cities,
// keeping request order.
func requestedTargets(countries, cities []string) []sponsorTarget {
	seen := map[sponsorTarget]bool{}
	out := make([]sponsorTarget, 0, len(countries)+len(cities))
	add := func(t models.EntityType, names []string) {
		for _, n := range names {
			n = strings.TrimSpace(n)
			if n == "" {
				continue
			}
			key := sponsorTarget{Type: t, Name: n}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, key)
		}
	}
	add(models.EntityCountry, countries)
	add(models.EntityCity, cities)
	return out
}

// planTargets splits requested into targets to insert and a skipped count.
func planTargets(requested []sponsorTarget, existing map[sponsorTarget]bool) ([]sponsorTarget, int) {
	staged := make([]sponsorTarget, 0, len(requested))
	skipped := 0
	for _, t := range requested {
		if existing[t] {
			skipped++
			continue
		}
		staged = append(staged, t)
	}
	return staged, skipped
}

func batchMessage(added, skipped int) string {
	switch {
	case added > 0 && skipped == 0:
		return fmt.Sprintf("%d sponsorluk başarıyla eklendi.", added)
	case added > 0:
		return fmt.Sprintf("%d sponsorluk eklendi, %d sponsorluk zaten mevcut olduğu için atlandı.", added, skipped)
	default:
		return fmt.Sprintf("Seçilen sponsorlukların tümü zaten mevcut, %d kayıt atlandı.", skipped)
	}
}

// sponsorDates validates the shared date range and returns it as dates.
func sponsorDates(start, end string) (time.Time, *time.Time, error) {
	if strings.TrimSpace(start) == "" {
		return time.Time{}, nil, invalid("Başlangıç tarihi zorunludur.")
	}
	from, ok := normalize.ParseTime(start)
	if !ok {
		return time.Time{}, nil, invalidf("Geçersiz başlangıç tarihi: %q", start)
	}
	if strings.TrimSpace(end) == "" {
		return from, nil, nil
	}
	to, ok := normalize.ParseTime(end)
	if !ok {
		return time.Time{}, nil, invalidf("Geçersiz bitiş tarihi: %q", end)
	}
	if to.Before(from) {
		return time.Time{}, nil, invalid("Bitiş tarihi başlangıç tarihinden önce olamaz.")
	}
	return from, &to, nil
}

type companyDisplay struct {
	name, logo, link string
}

func displayFor(p models.UserProfile) companyDisplay {
	d := companyDisplay{name: p.DisplayName()}
	if c, ok := p.Company(); ok {
		d.logo = c.LogoURL
		d.link = c.Website
	}
	return d
}

func (s *Sponsors) company(ctx context.Context, id string) (models.UserProfile, error) {
	raw, err := findRaw(ctx, s.users, bson.M{"_id": id}, msgCompanyNotFound)
	if err != nil {
		return models.UserProfile{}, err
	}
	return decodeProfile(id, raw)
}

func (s *Sponsors) existingTargets(ctx context.Context, companyID string) (map[sponsorTarget]bool, error) {
	opts := options.Find().SetProjection(bson.M{"entityType": 1, "entityName": 1})
	cursor, err := s.c.Find(ctx, bson.M{"companyId": companyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := map[sponsorTarget]bool{}
	for cursor.Next(ctx) {
		var row struct {
			Type string `bson:"entityType"`
			Name string `bson:"entityName"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		out[sponsorTarget{Type: models.EntityType(row.Type), Name: row.Name}] = true
	}
	return out, cursor.Err()
}

// AddSponsorshipsBatch creates the missing sponsorships of one company in a
// single transaction. Targets the company already sponsors are skipped, so
// repeating a batch adds nothing.
func (s *Sponsors) AddSponsorshipsBatch(ctx context.Context, req SponsorshipBatch) (BatchResult, error) {
	requested := requestedTargets(req.CountryCodes, req.CityNames)
	if len(requested) == 0 {
		return BatchResult{}, invalid("En az bir ülke veya şehir seçmelisiniz.")
	}
	start, end, err := sponsorDates(req.StartDate, req.EndDate)
	if err != nil {
		return BatchResult{}, err
	}

	profile, err := s.company(ctx, req.CompanyID)
	if err != nil {
		return BatchResult{}, err
	}
	existing, err := s.existingTargets(ctx, req.CompanyID)
	if err != nil {
		return BatchResult{}, err
	}

	staged, skipped := planTargets(requested, existing)
	if len(staged) == 0 {
		return BatchResult{Success: true, SkippedCount: skipped, Message: batchMessage(0, skipped)}, nil
	}

	display := displayFor(profile)
	now := clock()
	writes := make([]mongo.WriteModel, 0, len(staged))
	refs := make(bson.A, 0, len(staged))
	for _, t := range staged {
		doc := bson.M{
			"_id":         newID(),
			"companyId":   req.CompanyID,
			"companyName": display.name,
			"companyLogo": display.logo,
			"companyLink": display.link,
			"entityType":  string(t.Type),
			"entityName":  t.Name,
			"startDate":   start,
			"isActive":    true,
			"createdAt":   now,
		}
		if end != nil {
			doc["endDate"] = *end
		}
		filter := bson.M{"companyId": req.CompanyID, "entityType": string(t.Type), "entityName": t.Name}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(filter).
			SetUpdate(bson.M{"$setOnInsert": doc}).
			SetUpsert(true))
		refs = append(refs, t.ref())
	}

	var added int
	err = database.WithTransaction(ctx, s.c.Database().Client(), func(ctx context.Context) error {
		res, err := s.c.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
		if err != nil {
			return err
		}
		added = int(res.UpsertedCount)
		_, err = s.users.UpdateByID(ctx, req.CompanyID, bson.M{
			"$addToSet": bson.M{"sponsorships": bson.M{"$each": refs}},
		})
		return err
	})
	if err != nil {
		zap.L().Error("sponsorship batch failed",
			zap.String("companyId", req.CompanyID),
			zap.Int("staged", len(staged)),
			zap.Error(err))
		return BatchResult{}, err
	}

	// A concurrent writer may have inserted a staged target first.
	skipped += len(staged) - added

	zap.L().Info("sponsorship batch committed",
		zap.String("companyId", req.CompanyID),
		zap.Int("added", added),
		zap.Int("skipped", skipped))
	return BatchResult{
		Success:      true,
		AddedCount:   added,
		SkippedCount: skipped,
		Message:      batchMessage(added, skipped),
	}, nil
}

// AddSponsor creates one sponsorship. A duplicate target is a conflict.
func (s *Sponsors) AddSponsor(ctx context.Context, fields bson.M) (models.Sponsor, error) {
	id := newID()
	doc, err := prepareInput(id, fields, models.SponsorSchema)
	if err != nil {
		return models.Sponsor{}, err
	}
	var sp models.Sponsor
	if err := normalize.Into(doc, &sp); err != nil {
		return models.Sponsor{}, invalid("Geçersiz sponsorluk verisi.")
	}
	sp.ID = id
	sp.EntityName = strings.TrimSpace(sp.EntityName)
	sp.IsActive = true
	if err := sp.Validate(); err != nil {
		return models.Sponsor{}, validationError(err)
	}
	if _, _, err := sponsorDates(stringField(fields, "startDate"), sp.EndDate); err != nil {
		return models.Sponsor{}, err
	}

	profile, err := s.company(ctx, sp.CompanyID)
	if err != nil {
		return models.Sponsor{}, err
	}
	display := displayFor(profile)
	sp.CompanyName, sp.CompanyLogo, sp.CompanyLink = display.name, display.logo, display.link

	now := clock()
	stored, err := storageDocument(sp, models.SponsorSchema)
	if err != nil {
		return models.Sponsor{}, err
	}
	stored["createdAt"] = now

	if _, err := s.c.InsertOne(ctx, stored); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Sponsor{}, conflict(msgSponsorDuplicate)
		}
		return models.Sponsor{}, err
	}

	ref := models.SponsorshipRef{Type: sp.EntityType, Name: sp.EntityName}
	if _, err := s.users.UpdateByID(ctx, sp.CompanyID, bson.M{"$addToSet": bson.M{"sponsorships": ref}}); err != nil {
		zap.L().Warn("sponsorship ref not recorded on company", zap.String("companyId", sp.CompanyID), zap.Error(err))
	}
	sp.CreatedAt = normalize.FormatTime(now)
	return sp, nil
}

func (s *Sponsors) Get(ctx context.Context, id string) (models.Sponsor, error) {
	raw, err := findRaw(ctx, s.c, bson.M{"_id": id}, msgSponsorNotFound)
	if err != nil {
		return models.Sponsor{}, err
	}
	return decodeSponsor(id, raw)
}

func (s *Sponsors) List(ctx context.Context) ([]models.Sponsor, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll(ctx, s.c, bson.M{}, opts, decodeSponsor)
}

func (s *Sponsors) ByCompany(ctx context.Context, companyID string) ([]models.Sponsor, error) {
	opts := options.Find().SetSort(bson.D{{Key: "entityType", Value: 1}, {Key: "entityName", Value: 1}})
	return findAll(ctx, s.c, bson.M{"companyId": companyID}, opts, decodeSponsor)
}

// ActiveForEntity returns the sponsors shown on a country or city page at
// the given day, ordered by company name.
func (s *Sponsors) ActiveForEntity(ctx context.Context, entityType models.EntityType, entityName string, day time.Time) ([]models.Sponsor, error) {
	if _, err := models.ParseEntityType(string(entityType)); err != nil {
		return nil, invalid("Geçersiz sponsorluk türü. 'country' veya 'city' olmalı.")
	}
	y, m, d := day.UTC().Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	endOfDay := startOfDay.Add(24 * time.Hour)

	filter := bson.M{
		"entityType": string(entityType),
		"entityName": strings.TrimSpace(entityName),
		"isActive":   bson.M{"$ne": false},
		"startDate":  bson.M{"$lt": endOfDay},
		"$or": bson.A{
			bson.M{"endDate": bson.M{"$exists": false}},
			bson.M{"endDate": nil},
			bson.M{"endDate": bson.M{"$gte": startOfDay}},
		},
	}
	out, err := findAll(ctx, s.c, filter, nil, decodeSponsor)
	if err != nil {
		return nil, err
	}
	collation.SortBy(out, func(sp models.Sponsor) string { return sp.CompanyName })
	return out, nil
}

// Update patches dates and flags. The company and target stay fixed; use
// TransferSponsorships to move a sponsorship.
func (s *Sponsors) Update(ctx context.Context, id string, patch bson.M) error {
	clean := withoutKeys(patch, "companyId", "companyName", "companyLogo", "companyLink", "entityType", "entityName")
	_, hasStart := clean["startDate"]
	_, hasEnd := clean["endDate"]
	if hasStart || hasEnd {
		start, end := stringField(clean, "startDate"), stringField(clean, "endDate")
		if !hasStart || !hasEnd {
			stored, err := s.Get(ctx, id)
			if err != nil {
				return err
			}
			if !hasStart {
				start = stored.StartDate
			}
			if !hasEnd {
				end = stored.EndDate
			}
		}
		if _, _, err := sponsorDates(start, end); err != nil {
			return err
		}
	}
	return applyPatch(ctx, s.c, id, clean, models.SponsorSchema, "createdAt", false, msgSponsorNotFound)
}

// Delete removes the sponsorship and its reference on the company profile.
func (s *Sponsors) Delete(ctx context.Context, id string) error {
	var sp struct {
		CompanyID  string `bson:"companyId"`
		EntityType string `bson:"entityType"`
		EntityName string `bson:"entityName"`
	}
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&sp); err != nil {
		return missing(err, msgSponsorNotFound)
	}
	ref := models.SponsorshipRef{Type: models.EntityType(sp.EntityType), Name: sp.EntityName}
	if _, err := s.users.UpdateByID(ctx, sp.CompanyID, bson.M{"$pull": bson.M{"sponsorships": ref}}); err != nil {
		zap.L().Warn("sponsorship ref not removed from company", zap.String("companyId", sp.CompanyID), zap.Error(err))
	}
	return nil
}

func (s *Sponsors) ToggleActive(ctx context.Context, id string) (bool, error) {
	return toggleActive(ctx, s.c, id, msgSponsorNotFound)
}

type TransferResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	MovedCount   int    `json:"movedCount"`
	DroppedCount int    `json:"droppedCount"`
}

// TransferSponsorships moves every sponsorship of one company to another.
// Targets the receiving company already sponsors are dropped from the
// source instead of duplicated.
func (s *Sponsors) TransferSponsorships(ctx context.Context, fromID, toID string) (TransferResult, error) {
	if fromID == "" || toID == "" {
		return TransferResult{}, invalid("Kaynak ve hedef firma zorunludur.")
	}
	if fromID == toID {
		return TransferResult{}, invalid("Kaynak ve hedef firma aynı olamaz.")
	}
	target, err := s.company(ctx, toID)
	if err != nil {
		return TransferResult{}, err
	}
	display := displayFor(target)

	var result TransferResult
	err = database.WithTransaction(ctx, s.c.Database().Client(), func(ctx context.Context) error {
		result = TransferResult{}

		held, err := s.existingTargets(ctx, toID)
		if err != nil {
			return err
		}
		source, err := findAll(ctx, s.c, bson.M{"companyId": fromID}, nil, decodeSponsor)
		if err != nil {
			return err
		}

		var move, drop []string
		refs := bson.A{}
		for _, sp := range source {
			t := sponsorTarget{Type: sp.EntityType, Name: sp.EntityName}
			if held[t] {
				drop = append(drop, sp.ID)
				continue
			}
			move = append(move, sp.ID)
			refs = append(refs, t.ref())
		}

		if len(drop) > 0 {
			if _, err := s.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": drop}}); err != nil {
				return err
			}
		}
		if len(move) > 0 {
			if _, err := s.c.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": move}}, bson.M{"$set": bson.M{
				"companyId":   toID,
				"companyName": display.name,
				"companyLogo": display.logo,
				"companyLink": display.link,
			}}); err != nil {
				return err
			}
			if _, err := s.users.UpdateByID(ctx, toID, bson.M{
				"$addToSet": bson.M{"sponsorships": bson.M{"$each": refs}},
			}); err != nil {
				return err
			}
		}
		if _, err := s.users.UpdateByID(ctx, fromID, bson.M{"$unset": bson.M{"sponsorships": ""}}); err != nil {
			return err
		}

		result.MovedCount, result.DroppedCount = len(move), len(drop)
		return nil
	})
	if err != nil {
		zap.L().Error("sponsorship transfer failed",
			zap.String("fromCompanyId", fromID),
			zap.String("toCompanyId", toID),
			zap.Error(err))
		return TransferResult{}, err
	}

	result.Success = true
	result.Message = transferMessage(result.MovedCount, result.DroppedCount)
	zap.L().Info("sponsorships transferred",
		zap.String("fromCompanyId", fromID),
		zap.String("toCompanyId", toID),
		zap.Int("moved", result.MovedCount),
		zap.Int("dropped", result.DroppedCount))
	return result, nil
}

func transferMessage(moved, dropped int) string {
	switch {
	case moved == 0 && dropped == 0:
		return "Aktarılacak sponsorluk bulunamadı."
	case dropped == 0:
		return fmt.Sprintf("%d sponsorluk aktarıldı.", moved)
	default:
		return fmt.Sprintf("%d sponsorluk aktarıldı, hedef firmada zaten bulunan %d sponsorluk kaldırıldı.", moved, dropped)
	}
}

func stringField(m bson.M, key string) string {
	s, _ := m[key].(string)
	return s
}
