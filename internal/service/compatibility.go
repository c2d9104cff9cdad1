package service

import (
	"gorm.io/gorm"

	"github.com/Giuseppe84/vespera/internal/models"
)

type ConflictPair struct {
	ComponentA uint `json:"componentA"`
	ComponentB uint `json:"componentB"`
}

type CompatibilityResult struct {
	IsCompatible bool           `json:"isCompatible"`
	Conflicts    []ConflictPair `json:"conflicts"`
}

// CompatibilityService answers whether a set of components can be combined.
// Compatibility is pairwise-explicit: every pair must have its own edge, no
// transitive closure is computed.
type CompatibilityService struct {
	db *gorm.DB
}

func NewCompatibilityService(db *gorm.DB) *CompatibilityService {
	return &CompatibilityService{db: db}
}

// Check reports the pairs among componentIDs that have no compatibility edge
// in either direction. Fewer than two ids is trivially compatible.
func (s *CompatibilityService) Check(componentIDs []uint) (*CompatibilityResult, error) {
	result := &CompatibilityResult{IsCompatible: true, Conflicts: []ConflictPair{}}
	if len(componentIDs) < 2 {
		return result, nil
	}

	for i := 0; i < len(componentIDs); i++ {
		for j := i + 1; j < len(componentIDs); j++ {
			a, b := componentIDs[i], componentIDs[j]
			var count int64
			err := s.db.Model(&models.ComponentCompatibility{}).
				Where("(component_a_id = ? AND component_b_id = ?) OR (component_a_id = ? AND component_b_id = ?)", a, b, b, a).
				Count(&count).Error
			if err != nil {
				return nil, err
			}
			if count == 0 {
				result.Conflicts = append(result.Conflicts, ConflictPair{ComponentA: a, ComponentB: b})
			}
		}
	}

	result.IsCompatible = len(result.Conflicts) == 0
	return result, nil
}
