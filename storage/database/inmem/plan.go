package inmemdb

import (
	"context"

	"github.com/upliftai/backend/core/plan"
)

type planRepository struct {
	db *planTable
}

func NewPlanRepository(db *DB) plan.Repository {
	return &planRepository{db: db.plans}
}

func (repo *planRepository) CreatePlan(_ context.Context, p plan.StudyPlan) (plan.StudyPlan, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table = append(repo.db.table, p)
	return p, nil
}

func (repo *planRepository) GetLastPlanByUser(_ context.Context, userID string) (plan.StudyPlan, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var last *plan.StudyPlan
	for i := range repo.db.table {
		p := &repo.db.table[i]
		if p.UserID != userID {
			continue
		}
		if last == nil || p.CreatedAt.After(last.CreatedAt) {
			last = p
		}
	}
	if last == nil {
		return plan.StudyPlan{}, plan.ErrNotFound
	}
	return *last, nil
}
