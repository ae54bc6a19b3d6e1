// Package memory provides in-process implementations of the repository interfaces
// for tests. The fx application in cmd/bazaar always uses the postgres repositories.
package memory

import (
	"context"
	"maps"
	"strings"
	"sync"
	"time"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"

	"github.com/google/uuid"
)

type subscriptionKey struct {
	subscriber uuid.UUID
	channel    uuid.UUID
}

// Store keeps accounts, categories and subscriptions in maps guarded by one mutex.
type Store struct {
	tx            sync.Mutex
	mu            sync.Mutex
	accounts      map[uuid.UUID]entity.Account
	categories    map[uuid.UUID]entity.Category
	subscriptions map[subscriptionKey]entity.Subscription
	now           func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:      make(map[uuid.UUID]entity.Account),
		categories:    make(map[uuid.UUID]entity.Category),
		subscriptions: make(map[subscriptionKey]entity.Subscription),
		now:           time.Now,
	}
}

// AccountRepo returns an AccountRepository over the store.
func (s *Store) AccountRepo() repository.AccountRepository { return (*accountRepository)(s) }

// CategoryRepo returns a CategoryRepository over the store.
func (s *Store) CategoryRepo() repository.CategoryRepository { return (*categoryRepository)(s) }

// SubscriptionRepo returns a SubscriptionRepository over the store.
func (s *Store) SubscriptionRepo() repository.SubscriptionRepository {
	return (*subscriptionRepository)(s)
}

// Execute runs fn against the store and restores the previous contents if fn fails.
// Transactions are serialized with each other but not isolated from direct repository calls.
func (s *Store) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	s.tx.Lock()
	defer s.tx.Unlock()

	s.mu.Lock()
	accounts := maps.Clone(s.accounts)
	categories := maps.Clone(s.categories)
	subscriptions := maps.Clone(s.subscriptions)
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.accounts, s.categories, s.subscriptions = accounts, categories, subscriptions
		s.mu.Unlock()

		return err
	}

	return nil
}

type accountRepository Store

func (r *accountRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return cloneAccount(account), nil
}

func (r *accountRepository) FindPublicByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return account.Sanitized(), nil
}

func (r *accountRepository) FindByEmailOrMobile(_ context.Context, email, mobileNo string) (*entity.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	mobileNo = strings.TrimSpace(mobileNo)
	if email == "" && mobileNo == "" {
		return nil, repository.ErrAccountNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if (email != "" && account.Email == email) || (mobileNo != "" && account.MobileNo == mobileNo) {
			return cloneAccount(account), nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *accountRepository) FindByUsername(_ context.Context, username string) (*entity.Account, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.Username == username {
			return cloneAccount(account).Sanitized(), nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *accountRepository) Create(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if existing.Username == account.Username || existing.Email == account.Email || existing.MobileNo == account.MobileNo {
			return domainerrors.ErrAccountAlreadyExists.WrapMessage("unique constraint violated on insert")
		}
	}

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	now := r.now()
	account.CreatedAt, account.UpdatedAt = now, now
	r.accounts[account.ID] = *cloneAccount(*account)

	return nil
}

func (r *accountRepository) UpdateProfile(_ context.Context, id uuid.UUID, profile *entity.ProfileUpdate) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for otherID, other := range r.accounts {
		if otherID != id && other.MobileNo == profile.MobileNo {
			return nil, domainerrors.ErrAccountAlreadyExists.WrapMessage("unique constraint violated on update")
		}
	}

	return r.update(id, func(account *entity.Account) {
		latitude, longitude := profile.Location.Lat(), profile.Location.Lon()
		categoryID := profile.CategoryID

		account.BusinessName = profile.BusinessName
		account.OwnerName = profile.OwnerName
		account.MobileNo = profile.MobileNo
		if profile.AltMobileNo != "" {
			account.AltMobileNo = profile.AltMobileNo
		}
		account.CategoryID = &categoryID
		account.Address = profile.Address
		account.Latitude = &latitude
		account.Longitude = &longitude
		account.FCMToken = profile.FCMToken
	})
}

func (r *accountRepository) UpdatePasswordHash(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.update(id, func(account *entity.Account) { account.PasswordHash = passwordHash })

	return err
}

func (r *accountRepository) UpdateAvatar(_ context.Context, id uuid.UUID, url string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.update(id, func(account *entity.Account) { account.Avatar = url })
}

func (r *accountRepository) UpdateCoverImage(_ context.Context, id uuid.UUID, url string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.update(id, func(account *entity.Account) { account.CoverImage = url })
}

func (r *accountRepository) SetRefreshToken(_ context.Context, id uuid.UUID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.update(id, func(account *entity.Account) { account.RefreshToken = &token })

	return err
}

func (r *accountRepository) RotateRefreshToken(_ context.Context, id uuid.UUID, current, next string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok || account.RefreshToken == nil || *account.RefreshToken != current {
		return repository.ErrRefreshTokenMismatch
	}
	account.RefreshToken = &next
	r.accounts[id] = account

	return nil
}

func (r *accountRepository) ClearRefreshToken(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if account, ok := r.accounts[id]; ok {
		account.RefreshToken = nil
		r.accounts[id] = account
	}

	return nil
}

// update must be called with the lock held.
func (r *accountRepository) update(id uuid.UUID, apply func(*entity.Account)) (*entity.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	apply(&account)
	account.UpdatedAt = r.now()
	r.accounts[id] = account

	return cloneAccount(account).Sanitized(), nil
}

func cloneAccount(account entity.Account) *entity.Account {
	if account.RefreshToken != nil {
		token := *account.RefreshToken
		account.RefreshToken = &token
	}

	return &account
}

type categoryRepository Store

func (r *categoryRepository) Create(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	now := r.now()
	category.CreatedAt, category.UpdatedAt = now, now
	r.categories[category.ID] = *category

	return nil
}

func (r *categoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}

	return &category, nil
}

func (r *categoryRepository) FindByTitle(_ context.Context, title string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, category := range r.categories {
		if category.Title == title {
			return &category, nil
		}
	}

	return nil, repository.ErrCategoryNotFound
}

type subscriptionRepository Store

func (r *subscriptionRepository) Create(_ context.Context, subscription *entity.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := subscriptionKey{subscriber: subscription.SubscriberID, channel: subscription.ChannelID}
	if _, exists := r.subscriptions[key]; exists {
		return repository.ErrDuplicateSubscription
	}

	if subscription.ID == uuid.Nil {
		subscription.ID = uuid.New()
	}
	subscription.CreatedAt = r.now()
	r.subscriptions[key] = *subscription

	return nil
}

func (r *subscriptionRepository) Delete(_ context.Context, subscriberID, channelID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.subscriptions, subscriptionKey{subscriber: subscriberID, channel: channelID})

	return nil
}

func (r *subscriptionRepository) ChannelStats(_ context.Context, channelID, viewerID uuid.UUID) (entity.ChannelStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var stats entity.ChannelStats
	for key := range r.subscriptions {
		if key.channel == channelID {
			stats.SubscribersCount++
			if key.subscriber == viewerID {
				stats.IsSubscribed = true
			}
		}
		if key.subscriber == channelID {
			stats.ChannelsSubscribedToCount++
		}
	}

	return stats, nil
}
