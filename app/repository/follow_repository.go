package repository

import (
	"github.com/khanh-pt/realworld/app/models"
	"gorm.io/gorm"
)

// followRepository implements the FollowRepository interface
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository instance
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Exists reports whether follower already follows the given user
func (r *followRepository) Exists(followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// Create records a follow relation. Following an already-followed user is a no-op.
func (r *followRepository) Create(followerID, followingID uint) error {
	exists, err := r.Exists(followerID, followingID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return r.db.Create(&models.Follow{FollowerID: followerID, FollowingID: followingID}).Error
}

// Delete removes a follow relation. Unfollowing a non-followed user is a no-op.
func (r *followRepository) Delete(followerID, followingID uint) error {
	return r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
}

// FollowingIDSet loads the subset of candidateIDs followed by the given user
// in a single query. Author enrichment for article and comment listings
// matches against this map in memory instead of issuing one query per row.
func (r *followRepository) FollowingIDSet(followerID uint, candidateIDs []uint) (map[uint]bool, error) {
	set := make(map[uint]bool)
	if followerID == 0 || len(candidateIDs) == 0 {
		return set, nil
	}

	var ids []uint
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id IN ?", followerID, candidateIDs).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
