package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vparmar-art/MarketplaceApp/internal/domain"
	"github.com/vparmar-art/MarketplaceApp/internal/dto"
	pkgdto "github.com/vparmar-art/MarketplaceApp/pkg/dto"
)

// publishEvent runs after the write has committed. Failures are logged and never
// reach the caller.
func publishEvent(ctx context.Context, publisher EventPublisher, key string, eventType string, data interface{}) {
	if publisher == nil {
		return
	}

	err := publisher.Publish(ctx, key, dto.KafkaMessage{
		EventType: eventType,
		Data:      data,
	})
	if err != nil {
		log.Warn().Err(err).Str("component", "publishEvent").Str("event_type", eventType).Msg("event dropped")
	}
}

func notify(notifier Notifier, to, subject, body string) {
	if notifier == nil || to == "" {
		return
	}

	if err := notifier.Send(to, subject, body); err != nil {
		log.Warn().Err(err).Str("component", "notify").Str("subject", subject).Msg("notification dropped")
	}
}

func toTime(unixMilli int64) time.Time {
	return time.UnixMilli(unixMilli).UTC()
}

func toUserResponse(user domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         user.ID,
		ExternalID: user.ExternalID,
		Username:   user.Username,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		IsStaff:    user.IsStaff,
		CreatedAt:  toTime(user.CreatedAt),
	}
}

func usersByID(users []domain.User) map[int64]domain.User {
	result := make(map[int64]domain.User, len(users))
	for _, user := range users {
		result[user.ID] = user
	}
	return result
}

func paginated(records interface{}, total uint64, filter pkgdto.Filter) pkgdto.PaginationResponse {
	return pkgdto.PaginationResponse{
		Metadata: pkgdto.PaginationMetadata{
			TotalCount: total,
			Page:       uint64(filter.Page),
			Limit:      filter.Limit,
		},
		Records: records,
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
