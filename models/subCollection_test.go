package models_test

import (
	"testing"

	"github.com/helloakshay27/rental_backend/models"
	"github.com/shopspring/decimal"
)

func seededParkings() models.SubCollection[models.NewParking] {
	var c models.SubCollection[models.NewParking]
	c.Seed([]models.NewParking{
		{HasId: models.HasId{Id: 11}, VehicleType: models.VehicleTypeFourWheeler, Count: 2},
		{HasId: models.HasId{Id: 12}, VehicleType: models.VehicleTypeTwoWheeler, Count: 5},
	})
	return c
}

func TestRemovePersistedRowRecordsIdentity(t *testing.T) {
	c := seededParkings()

	if !c.RemoveAt(0) {
		t.Fatal("RemoveAt(0) failed")
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	removed := c.Removed()
	if len(removed) != 1 || removed[0] != 11 {
		t.Fatalf("Removed() = %v, want [11]", removed)
	}
}

func TestRemoveUnpersistedRowLeavesNoMarker(t *testing.T) {
	c := seededParkings()
	c.Add(models.NewParking{VehicleType: models.VehicleTypeTwoWheeler, Count: 1})

	if !c.RemoveAt(2) {
		t.Fatal("RemoveAt(2) failed")
	}
	if len(c.Removed()) != 0 {
		t.Fatalf("Removed() = %v, want empty", c.Removed())
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
}

func TestWirePayloadCarriesDestroyMarkers(t *testing.T) {
	c := seededParkings()
	c.RemoveAt(1)
	c.Add(models.NewParking{VehicleType: models.VehicleTypeTwoWheeler, Count: 3})

	payload := c.WirePayload()
	if len(payload) != 3 {
		t.Fatalf("payload length = %d, want 3", len(payload))
	}
	// live rows first
	if payload[0].GetId() != 11 || payload[0].IsDeleted() {
		t.Errorf("payload[0] = id %d deleted %v", payload[0].GetId(), payload[0].IsDeleted())
	}
	if payload[1].GetId() != 0 || payload[1].IsDeleted() {
		t.Errorf("payload[1] = id %d deleted %v", payload[1].GetId(), payload[1].IsDeleted())
	}
	// destroy marker last, carrying only the identity
	marker := payload[2]
	if marker.GetId() != 12 || !marker.IsDeleted() {
		t.Errorf("marker = id %d deleted %v, want id 12 deleted", marker.GetId(), marker.IsDeleted())
	}
	if marker.Count != 0 {
		t.Errorf("marker carries data: count = %d", marker.Count)
	}
}

func TestUpdateAtPreservesIdentity(t *testing.T) {
	c := seededParkings()

	ok := c.UpdateAt(0, func(p *models.NewParking) {
		p.Id = 999
		p.Count = 4
		p.Charge = decimal.NewFromInt(500)
	})
	if !ok {
		t.Fatal("UpdateAt(0) failed")
	}

	p, _ := c.At(0)
	if p.GetId() != 11 {
		t.Errorf("id = %d, want 11 (identity must survive the patch)", p.GetId())
	}
	if p.Count != 4 {
		t.Errorf("count = %d, want 4", p.Count)
	}
}

func TestSeedResetsRemovedSet(t *testing.T) {
	c := seededParkings()
	c.RemoveAt(0)

	c.Seed([]models.NewParking{{HasId: models.HasId{Id: 21}}})
	if len(c.Removed()) != 0 {
		t.Fatalf("Removed() = %v after reseed, want empty", c.Removed())
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d after reseed, want 1", c.Len())
	}
}

func TestOutOfRangeIndexes(t *testing.T) {
	c := seededParkings()

	if c.RemoveAt(-1) || c.RemoveAt(2) {
		t.Error("RemoveAt out of range must return false")
	}
	if c.UpdateAt(5, func(p *models.NewParking) { p.Count = 1 }) {
		t.Error("UpdateAt out of range must return false")
	}
	if _, ok := c.At(2); ok {
		t.Error("At out of range must return false")
	}
}
