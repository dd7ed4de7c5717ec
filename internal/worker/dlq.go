package worker

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqPrefix = "dlq:"

// SendToDLQ mueve un job agotado a la cola muerta de su cola de origen para
// inspección manual.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, data []byte) {
	if err := rdb.LPush(ctx, dlqPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("no se pudo escribir en la cola muerta")
		return
	}
	log.Warn().Str("queue", dlqPrefix+queue).Msg("job enviado a la cola muerta")
}
