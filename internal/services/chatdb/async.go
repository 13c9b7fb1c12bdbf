package chatdb

import (
	"context"

	"github.com/chatroom/chat-service/internal/domain/models"
)

// Result carries the single outcome of an asynchronous operation.
type Result[T any] struct {
	Value T
	Err   error
}

// Async runs fn in its own goroutine. The returned channel yields exactly
// one Result and is then closed.
func Async[T any](ctx context.Context, fn func(context.Context) (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		v, err := fn(ctx)
		ch <- Result[T]{Value: v, Err: err}
	}()
	return ch
}

// SetupAsync runs Setup in the background. The channel is closed when done.
func (r *Repository) SetupAsync(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Setup(ctx)
	}()
	return done
}

// FindUserByEmailAsync is the asynchronous form of FindUserByEmail.
func (r *Repository) FindUserByEmailAsync(ctx context.Context, email string) <-chan Result[*models.User] {
	return Async(ctx, func(ctx context.Context) (*models.User, error) {
		return r.FindUserByEmail(ctx, email)
	})
}

// FindUserByIDAsync is the asynchronous form of FindUserByID.
func (r *Repository) FindUserByIDAsync(ctx context.Context, id string) <-chan Result[*models.User] {
	return Async(ctx, func(ctx context.Context) (*models.User, error) {
		return r.FindUserByID(ctx, id)
	})
}

// FindMessagesAsync is the asynchronous form of FindMessages.
func (r *Repository) FindMessagesAsync(ctx context.Context, maxResults int) <-chan Result[[]*models.Message] {
	return Async(ctx, func(ctx context.Context) ([]*models.Message, error) {
		return r.FindMessages(ctx, maxResults)
	})
}

// SaveMessageAsync is the asynchronous form of SaveMessage.
func (r *Repository) SaveMessageAsync(ctx context.Context, msg *models.Message) <-chan Result[bool] {
	return Async(ctx, func(ctx context.Context) (bool, error) {
		return r.SaveMessage(ctx, msg)
	})
}

// SaveUserAsync is the asynchronous form of SaveUser.
func (r *Repository) SaveUserAsync(ctx context.Context, user *models.User) <-chan Result[bool] {
	return Async(ctx, func(ctx context.Context) (bool, error) {
		return r.SaveUser(ctx, user)
	})
}
