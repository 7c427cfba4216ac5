package repositories

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/scriblyn/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryDB is a process-local document store. Every read returns a copy, so
// callers get the same read-modify-write semantics as with MongoDB.
type memoryDB struct {
	mu            sync.RWMutex
	lastWrite     time.Time
	users         map[primitive.ObjectID]models.User
	posts         map[primitive.ObjectID]models.Post
	communities   map[primitive.ObjectID]models.Community
	conversations map[primitive.ObjectID]models.Conversation
	messages      map[primitive.ObjectID]models.Message
	resources     map[primitive.ObjectID]models.Resource
}

// NewMemoryStore returns a Store backed by in-process maps. It enforces the
// same unique keys as the MongoDB indexes.
func NewMemoryStore() *Store {
	db := &memoryDB{
		users:         map[primitive.ObjectID]models.User{},
		posts:         map[primitive.ObjectID]models.Post{},
		communities:   map[primitive.ObjectID]models.Community{},
		conversations: map[primitive.ObjectID]models.Conversation{},
		messages:      map[primitive.ObjectID]models.Message{},
		resources:     map[primitive.ObjectID]models.Resource{},
	}
	return &Store{
		Users:         &memoryUserRepository{db},
		Posts:         &memoryPostRepository{db},
		Communities:   &memoryCommunityRepository{db},
		Conversations: &memoryConversationRepository{db},
		Messages:      &memoryMessageRepository{db},
		Resources:     &memoryResourceRepository{db},
	}
}

// now returns a strictly increasing timestamp so that orderings by
// createdAt are stable. Callers must hold mu.
func (db *memoryDB) now() time.Time {
	t := time.Now().UTC()
	if !t.After(db.lastWrite) {
		t = db.lastWrite.Add(time.Nanosecond)
	}
	db.lastWrite = t
	return t
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func hasID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func hasString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func cloneIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	if ids == nil {
		return nil
	}
	return append([]primitive.ObjectID{}, ids...)
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

func cloneIDPtr(id *primitive.ObjectID) *primitive.ObjectID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneUser(u models.User) models.User {
	u.Followers = cloneIDs(u.Followers)
	u.Following = cloneIDs(u.Following)
	return u
}

func clonePost(p models.Post) models.Post {
	p.Tags = cloneStrings(p.Tags)
	p.Likes = cloneIDs(p.Likes)
	p.Community = cloneIDPtr(p.Community)
	if p.Comments != nil {
		comments := make([]models.Comment, len(p.Comments))
		for i, c := range p.Comments {
			c.Likes = cloneIDs(c.Likes)
			if c.Replies != nil {
				c.Replies = append([]models.Reply{}, c.Replies...)
			}
			comments[i] = c
		}
		p.Comments = comments
	}
	return p
}

func cloneCommunity(c models.Community) models.Community {
	c.Members = cloneIDs(c.Members)
	c.Posts = cloneIDs(c.Posts)
	return c
}

func cloneConversation(c models.Conversation) models.Conversation {
	c.Members = cloneIDs(c.Members)
	c.GroupAdmin = cloneIDPtr(c.GroupAdmin)
	c.LastMessage = cloneIDPtr(c.LastMessage)
	return c
}

func cloneMessage(m models.Message) models.Message {
	m.Recipient = cloneIDPtr(m.Recipient)
	m.ConversationID = cloneIDPtr(m.ConversationID)
	return m
}

func cloneResource(r models.Resource) models.Resource {
	r.SavedBy = cloneIDs(r.SavedBy)
	r.Tags = cloneStrings(r.Tags)
	return r
}

// newerFirst orders by timestamp descending with the id as tie-break.
func newerFirst(at, bt time.Time, a, b primitive.ObjectID) bool {
	if !at.Equal(bt) {
		return at.After(bt)
	}
	return bytes.Compare(a[:], b[:]) > 0
}

func olderFirst(at, bt time.Time, a, b primitive.ObjectID) bool {
	if !at.Equal(bt) {
		return at.Before(bt)
	}
	return bytes.Compare(a[:], b[:]) < 0
}

// paginate slices items according to page.
func paginate[T any](items []T, page models.Pagination) []T {
	skip := page.Skip()
	if skip < 0 || skip >= int64(len(items)) {
		return []T{}
	}
	end := skip + page.Limit
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[skip:end]
}

type memoryUserRepository struct{ db *memoryDB }

func (r *memoryUserRepository) CreateUser(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == user.Email || u.Username == user.Username {
			return ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = r.db.now()
	user.UpdatedAt = user.CreatedAt
	if user.Followers == nil {
		user.Followers = []primitive.ObjectID{}
	}
	if user.Following == nil {
		user.Following = []primitive.ObjectID{}
	}
	r.db.users[user.ID] = cloneUser(*user)
	return nil
}

func (r *memoryUserRepository) findOne(match func(models.User) bool) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.db.users {
		if match(u) {
			out := cloneUser(u)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(func(u models.User) bool { return u.ID == id })
}

func (r *memoryUserRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return r.findOne(func(u models.User) bool { return u.Email == email })
}

func (r *memoryUserRepository) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return r.findOne(func(u models.User) bool { return u.Username == username })
}

func (r *memoryUserRepository) GetUserByFirebaseUID(_ context.Context, firebaseUID string) (*models.User, error) {
	if firebaseUID == "" {
		return nil, ErrNotFound
	}
	return r.findOne(func(u models.User) bool { return u.FirebaseUID == firebaseUID })
}

func (r *memoryUserRepository) GetUsersByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	users := []models.User{}
	for _, id := range ids {
		if u, ok := r.db.users[id]; ok {
			users = append(users, cloneUser(u))
		}
	}
	return users, nil
}

func (r *memoryUserRepository) GetUsers(_ context.Context) ([]models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	users := make([]models.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		users = append(users, cloneUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (r *memoryUserRepository) UpdateUser(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[user.ID]; !ok {
		return ErrNotFound
	}
	for id, u := range r.db.users {
		if id != user.ID && (u.Email == user.Email || u.Username == user.Username) {
			return ErrDuplicate
		}
	}
	user.UpdatedAt = r.db.now()
	r.db.users[user.ID] = cloneUser(*user)
	return nil
}

type memoryPostRepository struct{ db *memoryDB }

func (r *memoryPostRepository) CreatePost(_ context.Context, post *models.Post) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = r.db.now()
	post.UpdatedAt = post.CreatedAt
	r.db.posts[post.ID] = clonePost(*post)
	return nil
}

func (r *memoryPostRepository) GetPostByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	p, ok := r.db.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := clonePost(p)
	return &out, nil
}

func (r *memoryPostRepository) sorted(match func(models.Post) bool) []models.Post {
	posts := []models.Post{}
	for _, p := range r.db.posts {
		if match(p) {
			posts = append(posts, clonePost(p))
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return newerFirst(posts[i].CreatedAt, posts[j].CreatedAt, posts[i].ID, posts[j].ID)
	})
	return posts
}

func (r *memoryPostRepository) GetPostsByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.sorted(func(p models.Post) bool { return hasID(ids, p.ID) }), nil
}

func matchPost(f models.PostFilter, p models.Post) bool {
	if f.PublicOnly && p.Community != nil {
		return false
	}
	if s := strings.TrimSpace(f.Search); s != "" && !containsFold(p.Title, s) && !containsFold(p.Content, s) {
		return false
	}
	if f.Tag != "" && !hasString(p.Tags, f.Tag) {
		return false
	}
	if f.AuthorID != nil && p.Author != *f.AuthorID {
		return false
	}
	if f.CommunityID != nil && (p.Community == nil || *p.Community != *f.CommunityID) {
		return false
	}
	return true
}

func (r *memoryPostRepository) FindPosts(_ context.Context, filter models.PostFilter, page models.Pagination) ([]models.Post, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	posts := r.sorted(func(p models.Post) bool { return matchPost(filter, p) })
	return paginate(posts, page), int64(len(posts)), nil
}

func (r *memoryPostRepository) UpdatePost(_ context.Context, post *models.Post) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.posts[post.ID]; !ok {
		return ErrNotFound
	}
	post.UpdatedAt = r.db.now()
	r.db.posts[post.ID] = clonePost(*post)
	return nil
}

func (r *memoryPostRepository) DeletePost(_ context.Context, id primitive.ObjectID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.posts[id]; !ok {
		return ErrNotFound
	}
	delete(r.db.posts, id)
	return nil
}

type memoryCommunityRepository struct{ db *memoryDB }

func (r *memoryCommunityRepository) nameTaken(name string, except primitive.ObjectID) bool {
	for id, c := range r.db.communities {
		if id != except && c.Name == name {
			return true
		}
	}
	return false
}

func (r *memoryCommunityRepository) CreateCommunity(_ context.Context, community *models.Community) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.nameTaken(community.Name, primitive.NilObjectID) {
		return ErrDuplicate
	}
	community.ID = primitive.NewObjectID()
	community.CreatedAt = r.db.now()
	community.UpdatedAt = community.CreatedAt
	r.db.communities[community.ID] = cloneCommunity(*community)
	return nil
}

func (r *memoryCommunityRepository) GetCommunityByID(_ context.Context, id primitive.ObjectID) (*models.Community, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	c, ok := r.db.communities[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneCommunity(c)
	return &out, nil
}

func matchCommunity(f models.CommunityFilter, c models.Community) bool {
	if s := strings.TrimSpace(f.Search); s != "" && !containsFold(c.Name, s) && !containsFold(c.Description, s) {
		return false
	}
	if f.ViewerID == nil {
		return true
	}
	viewer := *f.ViewerID
	switch f.Relation {
	case models.RelationCreated:
		return c.Admin == viewer
	case models.RelationSubscribed:
		return hasID(c.Members, viewer)
	case models.RelationRecommended:
		return c.Admin != viewer && !hasID(c.Members, viewer)
	}
	return true
}

func (r *memoryCommunityRepository) FindCommunities(_ context.Context, filter models.CommunityFilter, page models.Pagination) ([]models.Community, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	communities := []models.Community{}
	for _, c := range r.db.communities {
		if matchCommunity(filter, c) {
			communities = append(communities, cloneCommunity(c))
		}
	}
	sort.Slice(communities, func(i, j int) bool { return communities[i].Name < communities[j].Name })
	return paginate(communities, page), int64(len(communities)), nil
}

func (r *memoryCommunityRepository) UpdateCommunity(_ context.Context, community *models.Community) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.communities[community.ID]; !ok {
		return ErrNotFound
	}
	if r.nameTaken(community.Name, community.ID) {
		return ErrDuplicate
	}
	community.UpdatedAt = r.db.now()
	r.db.communities[community.ID] = cloneCommunity(*community)
	return nil
}

func (r *memoryCommunityRepository) AppendPost(_ context.Context, communityID, postID primitive.ObjectID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.communities[communityID]
	if !ok {
		return ErrNotFound
	}
	c.Posts = append(cloneIDs(c.Posts), postID)
	c.UpdatedAt = r.db.now()
	r.db.communities[communityID] = c
	return nil
}

func (r *memoryCommunityRepository) DeleteCommunity(_ context.Context, id primitive.ObjectID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.communities[id]; !ok {
		return ErrNotFound
	}
	delete(r.db.communities, id)
	return nil
}

type memoryConversationRepository struct{ db *memoryDB }

func (r *memoryConversationRepository) CreateConversation(_ context.Context, conv *models.Conversation) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	conv.ID = primitive.NewObjectID()
	conv.CreatedAt = r.db.now()
	conv.UpdatedAt = conv.CreatedAt
	r.db.conversations[conv.ID] = cloneConversation(*conv)
	return nil
}

func (r *memoryConversationRepository) GetConversationByID(_ context.Context, id primitive.ObjectID) (*models.Conversation, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	c, ok := r.db.conversations[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneConversation(c)
	return &out, nil
}

func (r *memoryConversationRepository) FindDirectConversation(_ context.Context, a, b primitive.ObjectID) (*models.Conversation, error) {
	if a == b {
		return nil, ErrNotFound
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, c := range r.db.conversations {
		if !c.IsGroup && len(c.Members) == 2 && hasID(c.Members, a) && hasID(c.Members, b) {
			out := cloneConversation(c)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryConversationRepository) GetConversationsByMember(_ context.Context, userID primitive.ObjectID) ([]models.Conversation, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	convs := []models.Conversation{}
	for _, c := range r.db.conversations {
		if hasID(c.Members, userID) {
			convs = append(convs, cloneConversation(c))
		}
	}
	sort.Slice(convs, func(i, j int) bool {
		return newerFirst(convs[i].UpdatedAt, convs[j].UpdatedAt, convs[i].ID, convs[j].ID)
	})
	return convs, nil
}

func (r *memoryConversationRepository) SetLastMessage(_ context.Context, conversationID, messageID primitive.ObjectID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.conversations[conversationID]
	if !ok {
		return ErrNotFound
	}
	id := messageID
	c.LastMessage = &id
	c.UpdatedAt = r.db.now()
	r.db.conversations[conversationID] = c
	return nil
}

type memoryMessageRepository struct{ db *memoryDB }

func (r *memoryMessageRepository) CreateMessage(_ context.Context, msg *models.Message) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = r.db.now()
	msg.UpdatedAt = msg.CreatedAt
	r.db.messages[msg.ID] = cloneMessage(*msg)
	return nil
}

func (r *memoryMessageRepository) GetMessagesByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Message, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	msgs := []models.Message{}
	for _, id := range ids {
		if m, ok := r.db.messages[id]; ok {
			msgs = append(msgs, cloneMessage(m))
		}
	}
	return msgs, nil
}

func (r *memoryMessageRepository) GetMessagesByConversation(_ context.Context, conversationID primitive.ObjectID) ([]models.Message, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	msgs := []models.Message{}
	for _, m := range r.db.messages {
		if m.ConversationID != nil && *m.ConversationID == conversationID {
			msgs = append(msgs, cloneMessage(m))
		}
	}
	sort.Slice(msgs, func(i, j int) bool {
		return olderFirst(msgs[i].CreatedAt, msgs[j].CreatedAt, msgs[i].ID, msgs[j].ID)
	})
	return msgs, nil
}

type memoryResourceRepository struct{ db *memoryDB }

func (r *memoryResourceRepository) CreateResource(_ context.Context, resource *models.Resource) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	resource.ID = primitive.NewObjectID()
	resource.CreatedAt = r.db.now()
	resource.UpdatedAt = resource.CreatedAt
	r.db.resources[resource.ID] = cloneResource(*resource)
	return nil
}

func (r *memoryResourceRepository) GetResourceByID(_ context.Context, id primitive.ObjectID) (*models.Resource, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	res, ok := r.db.resources[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneResource(res)
	return &out, nil
}

func matchResource(f models.ResourceFilter, res models.Resource) bool {
	if s := strings.TrimSpace(f.Search); s != "" &&
		!containsFold(res.Title, s) && !containsFold(res.Description, s) && !containsFold(res.Type, s) {
		return false
	}
	if f.Type != "" && res.Type != f.Type {
		return false
	}
	if f.Tag != "" && !hasString(res.Tags, f.Tag) {
		return false
	}
	if f.AuthorID != nil && res.Author != *f.AuthorID {
		return false
	}
	if f.SavedByID != nil && !hasID(res.SavedBy, *f.SavedByID) {
		return false
	}
	return true
}

func (r *memoryResourceRepository) matching(f models.ResourceFilter) []models.Resource {
	resources := []models.Resource{}
	for _, res := range r.db.resources {
		if matchResource(f, res) {
			resources = append(resources, cloneResource(res))
		}
	}
	return resources
}

func (r *memoryResourceRepository) FindResources(_ context.Context, filter models.ResourceFilter, page models.Pagination) ([]models.Resource, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	resources := r.matching(filter)
	sort.Slice(resources, func(i, j int) bool {
		if resources[i].Title != resources[j].Title {
			return resources[i].Title < resources[j].Title
		}
		return olderFirst(resources[i].CreatedAt, resources[j].CreatedAt, resources[i].ID, resources[j].ID)
	})
	return paginate(resources, page), int64(len(resources)), nil
}

func (r *memoryResourceRepository) ListRecentResources(_ context.Context, filter models.ResourceFilter) ([]models.Resource, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	resources := r.matching(filter)
	sort.Slice(resources, func(i, j int) bool {
		return newerFirst(resources[i].CreatedAt, resources[j].CreatedAt, resources[i].ID, resources[j].ID)
	})
	return resources, nil
}

func (r *memoryResourceRepository) UpdateResource(_ context.Context, resource *models.Resource) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.resources[resource.ID]; !ok {
		return ErrNotFound
	}
	resource.UpdatedAt = r.db.now()
	r.db.resources[resource.ID] = cloneResource(*resource)
	return nil
}

func (r *memoryResourceRepository) DeleteResource(_ context.Context, id primitive.ObjectID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.resources[id]; !ok {
		return ErrNotFound
	}
	delete(r.db.resources, id)
	return nil
}
