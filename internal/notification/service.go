package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	authdomain "taskforge-backend/internal/auth/domain"
	authRepo "taskforge-backend/internal/auth/repository"
	"taskforge-backend/internal/authz"
	projectRepo "taskforge-backend/internal/project/repository"
	"taskforge-backend/pkg/apperr"
	"taskforge-backend/pkg/fcm"

	"cloud.google.com/go/pubsub"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// RecipientResult is the per-recipient outcome of a fan-out. Delivery is
// independent per recipient: one failure never rolls back or stops the
// others.
type RecipientResult struct {
	UserID string `json:"user"`
	Status string `json:"status"` // "delivered", "queued" or "failed"
	Error  string `json:"error,omitempty"`
}

const (
	StatusDelivered = "delivered"
	StatusQueued    = "queued"
	StatusFailed    = "failed"
)

// queuedDelivery is the wire form of one recipient's delivery on the
// async queue.
type queuedDelivery struct {
	UserID       string                 `json:"user"`
	Notification authdomain.Notification `json:"notification"`
}

// Service appends notifications to user documents and pushes them to
// registered devices. With a Pub/Sub topic configured, fan-out is queued
// and delivered asynchronously with at-least-once retries; otherwise it
// is a synchronous best-effort loop.
type Service struct {
	userRepo    authRepo.UserRepository
	fcmRepo     authRepo.FCMTokenRepository
	projectRepo projectRepo.ProjectRepository
	fcmClient   *fcm.Client

	pubsubClient *pubsub.Client
	topic        *pubsub.Topic
	topicName    string
	subName      string
}

func NewService(users authRepo.UserRepository, fcmTokens authRepo.FCMTokenRepository, projects projectRepo.ProjectRepository, fcmClient *fcm.Client) *Service {
	return &Service{
		userRepo:    users,
		fcmRepo:     fcmTokens,
		projectRepo: projects,
		fcmClient:   fcmClient,
	}
}

// EnableAsyncQueue switches fan-out to queued delivery through Pub/Sub.
func (s *Service) EnableAsyncQueue(ctx context.Context, projectID, topicName, credentialsFile string) error {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return fmt.Errorf("failed to create pubsub client: %w", err)
	}
	s.pubsubClient = client
	// One shared Topic: each pubsub.Topic owns publish goroutines that
	// only Stop releases.
	s.topic = client.Topic(topicName)
	s.topicName = topicName
	s.subName = topicName + "-sub"
	return nil
}

// Close flushes pending publishes and releases the queue resources. Safe
// to call when no queue is configured.
func (s *Service) Close() error {
	if s.topic != nil {
		s.topic.Stop()
	}
	if s.pubsubClient != nil {
		return s.pubsubClient.Close()
	}
	return nil
}

// Run consumes the async queue until ctx is cancelled. Failed deliveries
// are Nacked and redelivered.
func (s *Service) Run(ctx context.Context) {
	if s.pubsubClient == nil {
		return
	}
	log.Printf("[Notification] consuming topic %s via subscription %s", s.topicName, s.subName)

	sub := s.pubsubClient.Subscription(s.subName)
	exists, err := sub.Exists(ctx)
	if err != nil {
		log.Printf("[Notification] error checking subscription: %v", err)
		return
	}
	if !exists {
		sub, err = s.pubsubClient.CreateSubscription(ctx, s.subName, pubsub.SubscriptionConfig{
			Topic:       s.topic,
			AckDeadline: 10 * time.Second,
		})
		if err != nil {
			log.Printf("[Notification] failed to create subscription: %v", err)
			return
		}
	}

	err = sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		var delivery queuedDelivery
		if err := json.Unmarshal(msg.Data, &delivery); err != nil {
			log.Printf("[Notification] dropping malformed message: %v", err)
			msg.Ack()
			return
		}
		if _, err := s.Deliver(ctx, delivery.UserID, delivery.Notification); err != nil {
			log.Printf("[Notification] delivery to %s failed, will retry: %v", delivery.UserID, err)
			msg.Nack()
			return
		}
		msg.Ack()
	})
	if err != nil {
		log.Printf("[Notification] receive stopped: %v", err)
	}
}

// Deliver prepends the notification to the recipient's inbox, pushes it
// to their devices and returns it as stored, id and date assigned. A save
// that races another writer is retried once against the fresh document.
func (s *Service) Deliver(ctx context.Context, userID string, n authdomain.Notification) (*authdomain.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Date.IsZero() {
		n.Date = time.Now()
	}

	for attempt := 0; attempt < 2; attempt++ {
		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, apperr.NotFound("User not found")
		}

		user.Notifications = append([]authdomain.Notification{n}, user.Notifications...)
		err = s.userRepo.Update(ctx, user)
		if err == nil {
			s.push(ctx, userID, n)
			return &n, nil
		}
		if !errors.Is(err, apperr.ErrVersionConflict) {
			return nil, err
		}
	}
	return nil, apperr.ErrVersionConflict
}

// FanOut delivers (or queues) the notification for every recipient and
// reports one result per recipient.
func (s *Service) FanOut(ctx context.Context, recipients []string, n authdomain.Notification) []RecipientResult {
	results := make([]RecipientResult, 0, len(recipients))
	for _, userID := range recipients {
		if s.pubsubClient != nil {
			results = append(results, s.enqueue(ctx, userID, n))
			continue
		}
		if _, err := s.Deliver(ctx, userID, n); err != nil {
			results = append(results, RecipientResult{UserID: userID, Status: StatusFailed, Error: err.Error()})
			continue
		}
		results = append(results, RecipientResult{UserID: userID, Status: StatusDelivered})
	}
	return results
}

// NotifyProjectMembers fans out to every member of the project except the
// caller.
func (s *Service) NotifyProjectMembers(ctx context.Context, caller authz.Caller, projectID string, n authdomain.Notification) ([]RecipientResult, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperr.NotFound("Project not found")
	}

	recipients := make([]string, 0, len(project.Members))
	for _, id := range project.MemberIDs() {
		if id != caller.ID {
			recipients = append(recipients, id)
		}
	}
	return s.FanOut(ctx, recipients, n), nil
}

// ToggleRead flips the read flag of one inbox entry on the caller's own
// document.
func (s *Service) ToggleRead(ctx context.Context, userID, notificationID string) (*authdomain.Notification, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}

	for i := range user.Notifications {
		if user.Notifications[i].ID == notificationID {
			user.Notifications[i].Read = !user.Notifications[i].Read
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, err
			}
			return &user.Notifications[i], nil
		}
	}
	return nil, apperr.NotFound("Notification not found")
}

// Remove deletes one inbox entry from the caller's own document.
func (s *Service) Remove(ctx context.Context, userID, notificationID string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("User not found")
	}

	kept := user.Notifications[:0:0]
	for _, n := range user.Notifications {
		if n.ID != notificationID {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(user.Notifications) {
		return apperr.NotFound("Notification not found")
	}
	user.Notifications = kept
	return s.userRepo.Update(ctx, user)
}

func (s *Service) enqueue(ctx context.Context, userID string, n authdomain.Notification) RecipientResult {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Date.IsZero() {
		n.Date = time.Now()
	}

	data, err := json.Marshal(queuedDelivery{UserID: userID, Notification: n})
	if err != nil {
		return RecipientResult{UserID: userID, Status: StatusFailed, Error: err.Error()}
	}
	result := s.topic.Publish(ctx, &pubsub.Message{Data: data})
	if _, err := result.Get(ctx); err != nil {
		return RecipientResult{UserID: userID, Status: StatusFailed, Error: err.Error()}
	}
	return RecipientResult{UserID: userID, Status: StatusQueued}
}

// push is the best-effort device channel; failures are logged, dead
// tokens pruned.
func (s *Service) push(ctx context.Context, userID string, n authdomain.Notification) {
	if s.fcmClient == nil {
		return
	}
	tokens, err := s.fcmRepo.GetTokensByUserID(ctx, userID)
	if err != nil || len(tokens) == 0 {
		return
	}

	tokenStrings := make([]string, 0, len(tokens))
	for _, t := range tokens {
		tokenStrings = append(tokenStrings, t.Token)
	}

	failed, err := s.fcmClient.SendToDevices(ctx, tokenStrings, fcm.PushData{
		Title: n.Type,
		Body:  n.Text,
		Data:  map[string]string{"notification_id": n.ID},
	})
	if err != nil {
		log.Printf("[Notification] push to %s failed: %v", userID, err)
		return
	}
	for _, token := range failed {
		if err := s.fcmRepo.DeleteToken(ctx, token); err != nil {
			log.Printf("[Notification] failed to prune dead token: %v", err)
		}
	}
}
