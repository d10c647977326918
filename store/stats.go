package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"cleanup-be/models"
)

type countBucket struct {
	Count int64 `bson:"count"`
}

type groupBucket struct {
	ID    string `bson:"_id"`
	Count int64  `bson:"count"`
}

// requestFacets is the single document produced by RequestStatsPipeline
type requestFacets struct {
	Total      []countBucket `bson:"total"`
	ByStatus   []groupBucket `bson:"byStatus"`
	BySeverity []groupBucket `bson:"bySeverity"`
	LastWeek   []countBucket `bson:"lastWeek"`
	Today      []countBucket `bson:"today"`
}

// userFacets is the single document produced by UserStatsPipeline
type userFacets struct {
	Total         []countBucket `bson:"total"`
	ByStatus      []groupBucket `bson:"byStatus"`
	EmailVerified []countBucket `bson:"emailVerified"`
	Admins        []countBucket `bson:"admins"`
	LastWeek      []countBucket `bson:"lastWeek"`
}

func countFacet(match bson.M) bson.A {
	if match == nil {
		return bson.A{bson.M{"$count": "count"}}
	}
	return bson.A{bson.M{"$match": match}, bson.M{"$count": "count"}}
}

func groupFacet(field string) bson.A {
	return bson.A{bson.M{"$group": bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}}}
}

// RequestStatsPipeline computes every request counter in one $facet pass.
// The week window is the trailing seven days from now; today starts at local midnight.
func RequestStatsPipeline(match bson.M, now time.Time) mongo.Pipeline {
	weekAgo := now.AddDate(0, 0, -7)
	midnight := models.StartOfDay(now)

	pipeline := mongo.Pipeline{}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	return append(pipeline, bson.D{{Key: "$facet", Value: bson.M{
		"total":      countFacet(nil),
		"byStatus":   groupFacet("status"),
		"bySeverity": groupFacet("severity"),
		"lastWeek":   countFacet(bson.M{"createdAt": bson.M{"$gte": weekAgo, "$lte": now}}),
		"today":      countFacet(bson.M{"createdAt": bson.M{"$gte": midnight, "$lte": now}}),
	}}})
}

// UserStatsPipeline computes the account counters in one $facet pass
func UserStatsPipeline(now time.Time) mongo.Pipeline {
	weekAgo := now.AddDate(0, 0, -7)
	return mongo.Pipeline{
		bson.D{{Key: "$facet", Value: bson.M{
			"total":         countFacet(nil),
			"byStatus":      groupFacet("status"),
			"emailVerified": countFacet(bson.M{"emailVerified": true}),
			"admins":        countFacet(bson.M{"role": models.RoleAdmin}),
			"lastWeek":      countFacet(bson.M{"registeredAt": bson.M{"$gte": weekAgo, "$lte": now}}),
		}}},
	}
}

func firstCount(b []countBucket) int64 {
	if len(b) == 0 {
		return 0
	}
	return b[0].Count
}

func (f requestFacets) toStats() *models.RequestStats {
	stats := models.NewRequestStats()
	stats.Total = firstCount(f.Total)
	stats.LastWeek = firstCount(f.LastWeek)
	stats.Today = firstCount(f.Today)
	for _, b := range f.ByStatus {
		if _, ok := stats.ByStatus[models.Status(b.ID)]; ok {
			stats.ByStatus[models.Status(b.ID)] = b.Count
		}
	}
	for _, b := range f.BySeverity {
		if _, ok := stats.BySeverity[models.Level(b.ID)]; ok {
			stats.BySeverity[models.Level(b.ID)] = b.Count
		}
	}
	return stats
}

func (f userFacets) toStats() *models.UserStats {
	stats := models.NewUserStats()
	stats.Total = firstCount(f.Total)
	stats.EmailVerified = firstCount(f.EmailVerified)
	stats.Admins = firstCount(f.Admins)
	stats.LastWeek = firstCount(f.LastWeek)
	for _, b := range f.ByStatus {
		status := models.UserStatus(b.ID)
		// accounts created before statuses existed count as active
		if b.ID == "" {
			status = models.UserActive
		}
		if _, ok := stats.ByStatus[status]; ok {
			stats.ByStatus[status] += b.Count
		}
	}
	return stats
}
