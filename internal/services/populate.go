package services

import (
	"context"

	"github.com/anonto42/scriblyn/backend/internal/models"
	"github.com/anonto42/scriblyn/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Populator resolves user and message references into display projections
// with one batched lookup per call.
type Populator struct {
	users    repositories.UserRepository
	messages repositories.MessageRepository
}

func NewPopulator(users repositories.UserRepository, messages repositories.MessageRepository) *Populator {
	return &Populator{users: users, messages: messages}
}

type userIndex map[primitive.ObjectID]models.UserCompact

// compact returns the projection for id. A reference to a user that no
// longer exists still renders with its id.
func (idx userIndex) compact(id primitive.ObjectID) models.UserCompact {
	if u, ok := idx[id]; ok {
		return u
	}
	return models.UserCompact{ID: id}
}

func (idx userIndex) compacts(ids []primitive.ObjectID) []models.UserCompact {
	out := make([]models.UserCompact, 0, len(ids))
	for _, id := range ids {
		out = append(out, idx.compact(id))
	}
	return out
}

func (p *Populator) lookup(ctx context.Context, ids []primitive.ObjectID) (userIndex, error) {
	users, err := p.users.GetUsersByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, storeErr(err, "User", "load users")
	}
	idx := make(userIndex, len(users))
	for i := range users {
		idx[users[i].ID] = users[i].ToCompact()
	}
	return idx, nil
}

func postUserIDs(p *models.Post) []primitive.ObjectID {
	ids := []primitive.ObjectID{p.Author}
	for _, c := range p.Comments {
		ids = append(ids, c.User)
		for _, r := range c.Replies {
			ids = append(ids, r.User)
		}
	}
	return ids
}

func nonNilIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	if ids == nil {
		return []primitive.ObjectID{}
	}
	return ids
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func buildPostView(p *models.Post, idx userIndex) models.PostView {
	comments := make([]models.CommentView, 0, len(p.Comments))
	for _, c := range p.Comments {
		replies := make([]models.ReplyView, 0, len(c.Replies))
		for _, r := range c.Replies {
			replies = append(replies, models.ReplyView{
				ID:        r.ID,
				User:      idx.compact(r.User),
				Text:      r.Text,
				CreatedAt: r.CreatedAt,
			})
		}
		comments = append(comments, models.CommentView{
			ID:        c.ID,
			User:      idx.compact(c.User),
			Text:      c.Text,
			Likes:     nonNilIDs(c.Likes),
			Replies:   replies,
			CreatedAt: c.CreatedAt,
		})
	}
	return models.PostView{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Author:    idx.compact(p.Author),
		Tags:      nonNilStrings(p.Tags),
		Image:     p.Image,
		Anonymous: p.Anonymous,
		Community: p.Community,
		Likes:     nonNilIDs(p.Likes),
		Comments:  comments,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (p *Populator) PostViews(ctx context.Context, posts []models.Post) ([]models.PostView, error) {
	var ids []primitive.ObjectID
	for i := range posts {
		ids = append(ids, postUserIDs(&posts[i])...)
	}
	idx, err := p.lookup(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]models.PostView, 0, len(posts))
	for i := range posts {
		views = append(views, buildPostView(&posts[i], idx))
	}
	return views, nil
}

func (p *Populator) PostView(ctx context.Context, post *models.Post) (*models.PostView, error) {
	views, err := p.PostViews(ctx, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func buildCommunityView(c *models.Community, idx userIndex) models.CommunityView {
	return models.CommunityView{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Image:       c.Image,
		Admin:       idx.compact(c.Admin),
		Members:     idx.compacts(c.Members),
		Posts:       nonNilIDs(c.Posts),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (p *Populator) CommunityViews(ctx context.Context, communities []models.Community) ([]models.CommunityView, error) {
	var ids []primitive.ObjectID
	for _, c := range communities {
		ids = append(ids, c.Admin)
		ids = append(ids, c.Members...)
	}
	idx, err := p.lookup(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]models.CommunityView, 0, len(communities))
	for i := range communities {
		views = append(views, buildCommunityView(&communities[i], idx))
	}
	return views, nil
}

func (p *Populator) CommunityView(ctx context.Context, community *models.Community) (*models.CommunityView, error) {
	views, err := p.CommunityViews(ctx, []models.Community{*community})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func buildMessageView(m *models.Message, idx userIndex) models.MessageView {
	return models.MessageView{
		ID:             m.ID,
		Sender:         idx.compact(m.Sender),
		ConversationID: m.ConversationID,
		Content:        m.Content,
		MediaType:      m.MediaType,
		MediaURL:       m.MediaURL,
		Read:           m.Read,
		CreatedAt:      m.CreatedAt,
	}
}

func (p *Populator) MessageViews(ctx context.Context, msgs []models.Message) ([]models.MessageView, error) {
	ids := make([]primitive.ObjectID, 0, len(msgs))
	for _, m := range msgs {
		ids = append(ids, m.Sender)
	}
	idx, err := p.lookup(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]models.MessageView, 0, len(msgs))
	for i := range msgs {
		views = append(views, buildMessageView(&msgs[i], idx))
	}
	return views, nil
}

// ConversationViews populates members, the group admin and the last message
// with its sender.
func (p *Populator) ConversationViews(ctx context.Context, convs []models.Conversation) ([]models.ConversationView, error) {
	var lastIDs []primitive.ObjectID
	for _, c := range convs {
		if c.LastMessage != nil {
			lastIDs = append(lastIDs, *c.LastMessage)
		}
	}
	lastMsgs, err := p.messages.GetMessagesByIDs(ctx, lastIDs)
	if err != nil {
		return nil, storeErr(err, "Message", "load messages")
	}
	byID := make(map[primitive.ObjectID]*models.Message, len(lastMsgs))
	for i := range lastMsgs {
		byID[lastMsgs[i].ID] = &lastMsgs[i]
	}

	var ids []primitive.ObjectID
	for _, c := range convs {
		ids = append(ids, c.Members...)
		if c.GroupAdmin != nil {
			ids = append(ids, *c.GroupAdmin)
		}
	}
	for _, m := range lastMsgs {
		ids = append(ids, m.Sender)
	}
	idx, err := p.lookup(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.ConversationView, 0, len(convs))
	for _, c := range convs {
		view := models.ConversationView{
			ID:        c.ID,
			Name:      c.Name,
			Members:   idx.compacts(c.Members),
			IsGroup:   c.IsGroup,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		}
		if c.GroupAdmin != nil {
			admin := idx.compact(*c.GroupAdmin)
			view.GroupAdmin = &admin
		}
		if c.LastMessage != nil {
			if m, ok := byID[*c.LastMessage]; ok {
				mv := buildMessageView(m, idx)
				view.LastMessage = &mv
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (p *Populator) ResourceViews(ctx context.Context, resources []models.Resource) ([]models.ResourceView, error) {
	ids := make([]primitive.ObjectID, 0, len(resources))
	for _, r := range resources {
		ids = append(ids, r.Author)
	}
	idx, err := p.lookup(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]models.ResourceView, 0, len(resources))
	for _, r := range resources {
		views = append(views, models.ResourceView{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Type:        r.Type,
			Link:        r.Link,
			Author:      idx.compact(r.Author),
			SavedBy:     nonNilIDs(r.SavedBy),
			Tags:        nonNilStrings(r.Tags),
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		})
	}
	return views, nil
}

func (p *Populator) ResourceView(ctx context.Context, resource *models.Resource) (*models.ResourceView, error) {
	views, err := p.ResourceViews(ctx, []models.Resource{*resource})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}
