package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/JerryLinyx/wikiquiz/models"
)

// ArticleRepository is the single source of truth for article records. It is
// a plain key-value store keyed by URL with one update path: attaching a
// generated quiz.
type ArticleRepository interface {
	FindByURL(ctx context.Context, url string) (*models.Article, error)
	Create(ctx context.Context, article *models.Article) error
	AttachQuiz(ctx context.Context, id uint, quiz datatypes.JSON) (*models.Article, error)
	ListAll(ctx context.Context) ([]models.Article, error)
	GetByID(ctx context.Context, id uint) (*models.Article, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) FindByURL(ctx context.Context, url string) (*models.Article, error) {
	var article models.Article
	if err := r.db.WithContext(ctx).Where("url = ?", url).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

// Create inserts a new article. If a concurrent request already inserted the
// same URL, the unique index rejects the insert and the winning row is loaded
// into article instead; both callers end up with the same record.
func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	err := r.db.WithContext(ctx).Create(article).Error
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return r.db.WithContext(ctx).Where("url = ?", article.URL).First(article).Error
	}
	return err
}

func (r *articleRepository) AttachQuiz(ctx context.Context, id uint, quiz datatypes.JSON) (*models.Article, error) {
	if err := r.db.WithContext(ctx).Model(&models.Article{}).
		Where("id = ?", id).
		Update("quiz", quiz).Error; err != nil {
		return nil, err
	}

	var article models.Article
	if err := r.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) ListAll(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	if err := r.db.WithContext(ctx).First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// pgx reports SQLSTATE 23505 for unique_violation; gorm only translates
	// it when the dialector has translation enabled.
	return strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key")
}
