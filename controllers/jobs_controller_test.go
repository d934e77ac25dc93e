package controllers

import (
	"testing"
	"time"

	"github.com/rojgarihub/rojgarihub-backend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Every job write goes through this filter so a soft-deleted job can
// never be matched and resurrected by a racing update.
func TestNotDeletedJobFilter(t *testing.T) {
	id := bson.NewObjectID()
	f := notDeletedJob(id)

	if got, ok := f["_id"].(bson.ObjectID); !ok || got != id {
		t.Errorf("filter _id = %v, want %v", f["_id"], id)
	}
	status, ok := f["status"].(bson.M)
	if !ok {
		t.Fatalf("filter status clause = %T, want bson.M", f["status"])
	}
	if status["$ne"] != models.JobStatusDeleted {
		t.Errorf("filter status = %v, want $ne DELETED", status)
	}
}

// The public listing's boosted-first sort key must stop counting a job
// as boosted the instant its window lapses, without waiting for the
// lazy settle.
func TestPublicJobsPipeline_BoostWindowCutoff(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	p := publicJobsPipeline(bson.M{"status": models.JobStatusActive}, now, 20, 10)

	if len(p) != 5 {
		t.Fatalf("pipeline has %d stages, want 5 (match, addFields, sort, skip, limit)", len(p))
	}

	match, ok := p[0][0].Value.(bson.M)
	if !ok || match["status"] != models.JobStatusActive {
		t.Errorf("$match = %v, want the caller's filter", p[0][0].Value)
	}

	addFields := p[1][0].Value.(bson.M)
	boostActive, ok := addFields["boostActive"].(bson.M)
	if !ok {
		t.Fatal("$addFields must compute boostActive")
	}
	and := boostActive["$and"].(bson.A)
	gt := and[1].(bson.M)["$gt"].(bson.A)
	if gt[0] != "$boostExpiresAt" || gt[1] != now {
		t.Errorf("boostActive cutoff = %v > %v, want $boostExpiresAt > now", gt[0], gt[1])
	}

	sort := p[2][0].Value.(bson.D)
	if sort[0].Key != "boostActive" || sort[0].Value != -1 {
		t.Errorf("primary sort = %v, want boostActive descending", sort[0])
	}
	if sort[1].Key != "createdAt" || sort[1].Value != -1 {
		t.Errorf("secondary sort = %v, want createdAt descending", sort[1])
	}

	if p[3][0].Value != int64(20) || p[4][0].Value != int64(10) {
		t.Errorf("skip/limit = %v/%v, want 20/10", p[3][0].Value, p[4][0].Value)
	}
}
