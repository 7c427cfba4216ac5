package services

import (
	"context"
	"strings"

	"github.com/anonto42/scriblyn/backend/internal/apperr"
	"github.com/anonto42/scriblyn/backend/internal/models"
	"github.com/anonto42/scriblyn/backend/internal/repositories"
	"github.com/anonto42/scriblyn/backend/pkg/log"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageService resolves conversations and appends messages to them.
type MessageService struct {
	users         repositories.UserRepository
	conversations repositories.ConversationRepository
	messages      repositories.MessageRepository
	populator     *Populator
}

func NewMessageService(store *repositories.Store, populator *Populator) *MessageService {
	return &MessageService{
		users:         store.Users,
		conversations: store.Conversations,
		messages:      store.Messages,
		populator:     populator,
	}
}

func parseObjectID(hex, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("Invalid %s", what)
	}
	return id, nil
}

// directConversation returns the direct conversation between a and b,
// creating it when none exists yet.
func (s *MessageService) directConversation(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error) {
	conv, err := s.conversations.FindDirectConversation(ctx, a, b)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, storeErr(err, "Conversation", "look up conversation")
	}
	if _, err := s.users.GetUserByID(ctx, b); err != nil {
		return nil, storeErr(err, "Recipient", "look up recipient")
	}
	conv = &models.Conversation{Members: []primitive.ObjectID{a, b}}
	if err := s.conversations.CreateConversation(ctx, conv); err != nil {
		return nil, storeErr(err, "Conversation", "create conversation")
	}
	return conv, nil
}

// resolveConversation picks the target of a send: an explicit conversation
// id wins, then a recipient id, otherwise the request is rejected.
func (s *MessageService) resolveConversation(ctx context.Context, senderID primitive.ObjectID, req *models.SendMessageRequest) (*models.Conversation, error) {
	switch {
	case req.ConversationID != "":
		id, err := parseObjectID(req.ConversationID, "conversation id")
		if err != nil {
			return nil, err
		}
		conv, err := s.conversations.GetConversationByID(ctx, id)
		if err != nil {
			return nil, storeErr(err, "Conversation", "load conversation")
		}
		if !containsID(conv.Members, senderID) {
			return nil, apperr.Forbidden("Not a member of this conversation")
		}
		return conv, nil
	case req.Target() != "":
		recipientID, err := parseObjectID(req.Target(), "recipient id")
		if err != nil {
			return nil, err
		}
		if recipientID == senderID {
			return nil, apperr.Validation("Cannot send a message to yourself")
		}
		return s.directConversation(ctx, senderID, recipientID)
	default:
		return nil, apperr.Validation("Recipient or conversation ID is required")
	}
}

// Send stores the message and then moves the conversation's lastMessage
// pointer to it. The two writes are independent; a failure of the second
// is reported as an internal error with the message already stored.
func (s *MessageService) Send(ctx context.Context, senderID primitive.ObjectID, req *models.SendMessageRequest) (*models.MessageView, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" && req.MediaURL == "" {
		return nil, apperr.Validation("Message content or media is required")
	}
	conv, err := s.resolveConversation(ctx, senderID, req)
	if err != nil {
		return nil, err
	}

	mediaType := req.MediaType
	if mediaType == "" {
		mediaType = models.MediaText
	}
	convID := conv.ID
	msg := &models.Message{
		Sender:         senderID,
		ConversationID: &convID,
		Content:        content,
		MediaType:      mediaType,
		MediaURL:       req.MediaURL,
	}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, storeErr(err, "Message", "send message")
	}
	if err := s.conversations.SetLastMessage(ctx, conv.ID, msg.ID); err != nil {
		log.Log.WithError(err).WithFields(logrus.Fields{
			"message_id":      msg.ID.Hex(),
			"conversation_id": conv.ID.Hex(),
		}).Error("message stored but conversation not updated")
		return nil, apperr.Internal(err, "Failed to update conversation")
	}

	views, err := s.populator.MessageViews(ctx, []models.Message{*msg})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// CreateGroup always creates a new conversation; the creator becomes the
// group admin and is appended to the members.
func (s *MessageService) CreateGroup(ctx context.Context, creatorID primitive.ObjectID, req *models.CreateGroupRequest) (*models.ConversationView, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("Group name is required")
	}
	var members []primitive.ObjectID
	for _, hex := range req.AllMemberIDs() {
		id, err := parseObjectID(hex, "member id")
		if err != nil {
			return nil, err
		}
		if id != creatorID {
			members = append(members, id)
		}
	}
	members = uniqueIDs(members)
	if len(members) < 1 {
		return nil, apperr.Validation("A group needs at least one other member")
	}

	found, err := s.users.GetUsersByIDs(ctx, members)
	if err != nil {
		return nil, storeErr(err, "User", "load members")
	}
	if len(found) != len(members) {
		return nil, apperr.NotFound("One or more members not found")
	}

	admin := creatorID
	conv := &models.Conversation{
		Name:       name,
		Members:    append(members, creatorID),
		IsGroup:    true,
		GroupAdmin: &admin,
	}
	if err := s.conversations.CreateConversation(ctx, conv); err != nil {
		return nil, storeErr(err, "Conversation", "create group")
	}
	views, err := s.populator.ConversationViews(ctx, []models.Conversation{*conv})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListConversations returns the user's conversations, most recently active
// first.
func (s *MessageService) ListConversations(ctx context.Context, userID primitive.ObjectID) ([]models.ConversationView, error) {
	convs, err := s.conversations.GetConversationsByMember(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "Conversation", "list conversations")
	}
	return s.populator.ConversationViews(ctx, convs)
}

// ListMessages returns the conversation's messages in creation order.
func (s *MessageService) ListMessages(ctx context.Context, actorID, conversationID primitive.ObjectID) ([]models.MessageView, error) {
	conv, err := s.conversations.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, storeErr(err, "Conversation", "load conversation")
	}
	if !containsID(conv.Members, actorID) {
		return nil, apperr.Forbidden("Not a member of this conversation")
	}
	return s.messagesOf(ctx, conv.ID)
}

// ListMessagesWith returns the direct thread between actor and the other
// user, or an empty list when they have never talked.
func (s *MessageService) ListMessagesWith(ctx context.Context, actorID, otherID primitive.ObjectID) ([]models.MessageView, error) {
	if actorID == otherID {
		return []models.MessageView{}, nil
	}
	conv, err := s.conversations.FindDirectConversation(ctx, actorID, otherID)
	if errors.Is(err, repositories.ErrNotFound) {
		return []models.MessageView{}, nil
	}
	if err != nil {
		return nil, storeErr(err, "Conversation", "look up conversation")
	}
	return s.messagesOf(ctx, conv.ID)
}

func (s *MessageService) messagesOf(ctx context.Context, conversationID primitive.ObjectID) ([]models.MessageView, error) {
	msgs, err := s.messages.GetMessagesByConversation(ctx, conversationID)
	if err != nil {
		return nil, storeErr(err, "Message", "load messages")
	}
	return s.populator.MessageViews(ctx, msgs)
}
