package services

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/scriblyn/backend/internal/apperr"
	"github.com/anonto42/scriblyn/backend/internal/models"
	"github.com/anonto42/scriblyn/backend/internal/repositories"
	"github.com/anonto42/scriblyn/backend/pkg/log"
	"github.com/jinzhu/copier"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostService manages posts and their embedded comments and replies.
// Like toggles and comment appends read the whole post, change it in memory
// and write it back; concurrent writers on one post are last-write-wins.
type PostService struct {
	posts       repositories.PostRepository
	communities repositories.CommunityRepository
	populator   *Populator
}

func NewPostService(store *repositories.Store, populator *Populator) *PostService {
	return &PostService{posts: store.Posts, communities: store.Communities, populator: populator}
}

func (s *PostService) load(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Post", "load post")
	}
	return post, nil
}

func (s *PostService) save(ctx context.Context, post *models.Post) (*models.PostView, error) {
	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, storeErr(err, "Post", "update post")
	}
	return s.populator.PostView(ctx, post)
}

// CreatePost stores a new post. With a community id the post is also
// appended to that community's post list in a second write; if that write
// fails the post stays stored and the call reports an internal error.
func (s *PostService) CreatePost(ctx context.Context, authorID primitive.ObjectID, req *models.CreatePostRequest) (*models.PostView, error) {
	post := &models.Post{
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
		Author:    authorID,
		Tags:      nonNilStrings(req.Tags),
		Image:     req.Image,
		Anonymous: req.Anonymous,
		Likes:     []primitive.ObjectID{},
		Comments:  []models.Comment{},
	}
	if req.CommunityID != "" {
		communityID, err := primitive.ObjectIDFromHex(req.CommunityID)
		if err != nil {
			return nil, apperr.Validation("Invalid community id")
		}
		if _, err := s.communities.GetCommunityByID(ctx, communityID); err != nil {
			return nil, storeErr(err, "Community", "load community")
		}
		post.Community = &communityID
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, storeErr(err, "Post", "create post")
	}

	if post.Community != nil {
		if err := s.communities.AppendPost(ctx, *post.Community, post.ID); err != nil {
			log.Log.WithError(err).WithFields(logrus.Fields{
				"post_id":      post.ID.Hex(),
				"community_id": post.Community.Hex(),
			}).Error("post stored but not linked to community")
			return nil, apperr.Internal(err, "Failed to add post to community")
		}
	}
	return s.populator.PostView(ctx, post)
}

func (s *PostService) ListPosts(ctx context.Context, filter models.PostFilter, page models.Pagination) (models.Page[models.PostView], error) {
	posts, total, err := s.posts.FindPosts(ctx, filter, page)
	if err != nil {
		return models.Page[models.PostView]{}, storeErr(err, "Post", "list posts")
	}
	views, err := s.populator.PostViews(ctx, posts)
	if err != nil {
		return models.Page[models.PostView]{}, err
	}
	return models.NewPage(views, page, total), nil
}

func (s *PostService) GetPost(ctx context.Context, id primitive.ObjectID) (*models.PostView, error) {
	post, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.populator.PostView(ctx, post)
}

func (s *PostService) UpdatePost(ctx context.Context, actorID, id primitive.ObjectID, req *models.UpdatePostRequest) (*models.PostView, error) {
	post, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actorID, post, "post"); err != nil {
		return nil, err
	}
	if err := copier.CopyWithOption(post, req, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, apperr.Internal(err, "Failed to update post")
	}
	if req.Anonymous != nil {
		post.Anonymous = *req.Anonymous
	}
	return s.save(ctx, post)
}

func (s *PostService) DeletePost(ctx context.Context, actorID, id primitive.ObjectID) error {
	post, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(actorID, post, "post"); err != nil {
		return err
	}
	if err := s.posts.DeletePost(ctx, id); err != nil {
		return storeErr(err, "Post", "delete post")
	}
	return nil
}

// ToggleLike adds userID to the post's likes, or removes it if present.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.PostView, error) {
	post, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Likes, _ = toggleID(post.Likes, userID)
	return s.save(ctx, post)
}

func (s *PostService) AddComment(ctx context.Context, postID, userID primitive.ObjectID, text string) (*models.PostView, error) {
	post, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Comments = append(post.Comments, models.Comment{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Text:      text,
		Likes:     []primitive.ObjectID{},
		Replies:   []models.Reply{},
		CreatedAt: time.Now().UTC(),
	})
	return s.save(ctx, post)
}

func (s *PostService) ToggleCommentLike(ctx context.Context, postID, commentID, userID primitive.ObjectID) (*models.PostView, error) {
	post, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	comment := post.FindComment(commentID)
	if comment == nil {
		return nil, apperr.NotFound("Comment not found")
	}
	comment.Likes, _ = toggleID(comment.Likes, userID)
	return s.save(ctx, post)
}

func (s *PostService) AddReply(ctx context.Context, postID, commentID, userID primitive.ObjectID, text string) (*models.PostView, error) {
	post, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	comment := post.FindComment(commentID)
	if comment == nil {
		return nil, apperr.NotFound("Comment not found")
	}
	comment.Replies = append(comment.Replies, models.Reply{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
	return s.save(ctx, post)
}
