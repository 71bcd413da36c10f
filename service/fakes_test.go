package service

import (
	"sort"
	"sync"

	"gorm.io/gorm"

	"personalblog/model"
)

// In-memory stand-ins for the DAO layer. They return the same gorm sentinel
// errors the real DAOs surface so the services' error mapping is exercised.

type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint64]*model.User)}
}

func (f *fakeUserStore) CreateUser(user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	user.ID = f.nextID
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) FindByEmail(email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) FindByID(id uint64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) rename(id uint64, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		user.Name = name
	}
}

type fakePostStore struct {
	mu     sync.Mutex
	nextID uint64
	posts  map[uint64]*model.Post
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: make(map[uint64]*model.Post)}
}

func (f *fakePostStore) Create(post *model.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	post.ID = f.nextID
	stored := *post
	stored.Comments = append(model.CommentList{}, post.Comments...)
	f.posts[post.ID] = &stored
	return nil
}

func (f *fakePostStore) snapshot(post *model.Post) model.Post {
	copied := *post
	copied.Comments = append(model.CommentList{}, post.Comments...)
	return copied
}

// List mimics the DAO ordering contract: created_at DESC, id DESC.
func (f *fakePostStore) List() ([]model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Post, 0, len(f.posts))
	for _, post := range f.posts {
		out = append(out, f.snapshot(post))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (f *fakePostStore) ListByAuthor(authorID uint64) ([]model.Post, error) {
	all, _ := f.List()
	out := make([]model.Post, 0, len(all))
	for _, post := range all {
		if post.AuthorID == authorID {
			out = append(out, post)
		}
	}
	return out, nil
}

func (f *fakePostStore) GetByID(id uint64) (*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := f.snapshot(post)
	return &copied, nil
}

func (f *fakePostStore) UpdateFields(id uint64, fields map[string]interface{}) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return 0, nil
	}
	if v, ok := fields["title"]; ok {
		post.Title = v.(string)
	}
	if v, ok := fields["description"]; ok {
		post.Description = v.(string)
	}
	if v, ok := fields["image_url"]; ok {
		post.ImageURL = v.(string)
	}
	if v, ok := fields["category"]; ok {
		post.Category = v.(string)
	}
	return 1, nil
}

func (f *fakePostStore) Delete(id uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return 0, nil
	}
	delete(f.posts, id)
	return 1, nil
}

func (f *fakePostStore) AppendComment(id uint64, comment model.Comment) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return 0, nil
	}
	post.Comments = append(post.Comments, comment)
	return 1, nil
}
