package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/dto"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/model"
)

func setupTestRequirementService() (RequirementService, *memStore) {
	repo, store := newMockRepository()
	return NewRequirementService(repo, zap.NewNop()), store
}

func TestRequirementService_Create_ComputesCurrent(t *testing.T) {
	svc, store := setupTestRequirementService()
	userID, mapID, semID := seedPlan(store)
	store.classes["c1"] = model.Class{ClassID: "c1", MapID: mapID, SemesterID: semID, Credits: 3, Tags: model.StringArray{"GEN_ED"}}

	resp, err := svc.Create(context.Background(), mapID, &dto.CreateRequirementRequest{
		Name: "General Studies", Tag: "gen_ed", Type: model.RequirementCreditHours, Goal: 6,
	}, userID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resp.Tag != "GEN_ED" {
		t.Errorf("tag should be normalised, got %q", resp.Tag)
	}
	if resp.Current != 3 || resp.Remaining != 3 || resp.Percent != 50 || resp.Completed {
		t.Errorf("unexpected progress %+v", resp)
	}
}

func TestRequirementService_Create_DuplicateTag(t *testing.T) {
	svc, store := setupTestRequirementService()
	userID, mapID, _ := seedPlan(store)
	seedRequirement(store, mapID, "MAJOR", model.RequirementClassCount, 10)

	_, err := svc.Create(context.Background(), mapID, &dto.CreateRequirementRequest{
		Name: "Major", Tag: "major", Type: model.RequirementClassCount,
	}, userID)
	if !errors.Is(err, ErrRequirementDuplicateTag) {
		t.Errorf("expected ErrRequirementDuplicateTag, got %v", err)
	}

	// the same tag in another map is fine
	otherUser, otherMap, _ := seedPlan(store)
	if _, err := svc.Create(context.Background(), otherMap, &dto.CreateRequirementRequest{
		Name: "Major", Tag: "MAJOR", Type: model.RequirementClassCount,
	}, otherUser); err != nil {
		t.Errorf("tag should be free in another map: %v", err)
	}
}

func TestRequirementService_Update_RenamePropagatesToClasses(t *testing.T) {
	svc, store := setupTestRequirementService()
	userID, mapID, semID := seedPlan(store)
	reqID := seedRequirement(store, mapID, "GEN_ED", model.RequirementCreditHours, 30)
	store.classes["c1"] = model.Class{ClassID: "c1", MapID: mapID, SemesterID: semID, Credits: 3, Tags: model.StringArray{"GEN_ED", "MAJOR"}}

	resp, err := svc.Update(context.Background(), mapID, reqID, &dto.UpdateRequirementRequest{Tag: strPtr("gen")}, userID)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if resp.Tag != "GEN" || resp.Current != 3 {
		t.Errorf("unexpected requirement %+v", resp)
	}

	tags := store.classes["c1"].Tags
	if !tags.Contains("GEN") || tags.Contains("GEN_ED") || !tags.Contains("MAJOR") {
		t.Errorf("class tags not renamed: %v", tags)
	}
}

func TestRequirementService_Update_TypeAndGoal(t *testing.T) {
	svc, store := setupTestRequirementService()
	userID, mapID, semID := seedPlan(store)
	reqID := seedRequirement(store, mapID, "MAJOR", model.RequirementCreditHours, 30)
	store.classes["c1"] = model.Class{ClassID: "c1", MapID: mapID, SemesterID: semID, Credits: 4, Tags: model.StringArray{"MAJOR"}}

	typ := model.RequirementClassCount
	resp, err := svc.Update(context.Background(), mapID, reqID, &dto.UpdateRequirementRequest{Type: &typ, Goal: intPtr(1)}, userID)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if resp.Current != 1 || !resp.Completed || resp.Percent != 100 {
		t.Errorf("unexpected progress %+v", resp)
	}
}

func TestRequirementService_Update_DuplicateTag(t *testing.T) {
	svc, store := setupTestRequirementService()
	userID, mapID, _ := seedPlan(store)
	seedRequirement(store, mapID, "GEN_ED", model.RequirementCreditHours, 30)
	reqID := seedRequirement(store, mapID, "MAJOR", model.RequirementClassCount, 10)

	_, err := svc.Update(context.Background(), mapID, reqID, &dto.UpdateRequirementRequest{Tag: strPtr("GEN_ED")}, userID)
	if !errors.Is(err, ErrRequirementDuplicateTag) {
		t.Errorf("expected ErrRequirementDuplicateTag, got %v", err)
	}
	// renaming to its own tag is a no-op
	if _, err := svc.Update(context.Background(), mapID, reqID, &dto.UpdateRequirementRequest{Tag: strPtr("major")}, userID); err != nil {
		t.Errorf("self rename failed: %v", err)
	}
}

func TestRequirementService_Delete_PrunesClassTags(t *testing.T) {
	svc, store := setupTestRequirementService()
	userID, mapID, semID := seedPlan(store)
	reqID := seedRequirement(store, mapID, "MAJOR", model.RequirementClassCount, 10)
	store.classes["c1"] = model.Class{ClassID: "c1", MapID: mapID, SemesterID: semID, Tags: model.StringArray{"MAJOR", "GEN_ED"}}

	if err := svc.Delete(context.Background(), mapID, reqID, userID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := store.requirements[reqID]; ok {
		t.Error("requirement still stored")
	}
	if tags := store.classes["c1"].Tags; tags.Contains("MAJOR") || !tags.Contains("GEN_ED") {
		t.Errorf("expected MAJOR pruned, got %v", tags)
	}
}

func TestRequirementService_NotFoundAcrossMaps(t *testing.T) {
	svc, store := setupTestRequirementService()
	userID, mapID, _ := seedPlan(store)
	_, otherMap, _ := seedPlan(store)
	foreign := seedRequirement(store, otherMap, "MAJOR", model.RequirementClassCount, 10)

	if err := svc.Delete(context.Background(), mapID, foreign, userID); !errors.Is(err, ErrRequirementNotFound) {
		t.Errorf("expected ErrRequirementNotFound, got %v", err)
	}
	if _, err := svc.List(context.Background(), otherMap, userID); !errors.Is(err, ErrMapForbidden) {
		t.Errorf("expected ErrMapForbidden, got %v", err)
	}
}
