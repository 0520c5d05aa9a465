//go:build integration

package cases

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/baechuer/identity-service/internal/application/auth"
	"github.com/baechuer/identity-service/internal/config"
	pg "github.com/baechuer/identity-service/internal/infrastructure/db/postgres"
	"github.com/baechuer/identity-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/identity-service/internal/infrastructure/redis"
	"github.com/baechuer/identity-service/internal/infrastructure/screening"
	"github.com/baechuer/identity-service/internal/infrastructure/security"
	itinfra "github.com/baechuer/identity-service/test/integration/infra"
)

const itSecret = "integration-test-secret"

type Deps struct {
	DB    *sql.DB
	Redis *redis.Client
	AMQP  *amqp.Connection

	Exchange  string
	Users     *pg.UserDirectory
	Issuer    *security.JWTIssuer
	Pub       *rabbitmq.Publisher
	Screening *itinfra.FakeScreening

	Svc *auth.Service
}

// MustNewDeps wires the real adapters against the environment. Each call gets
// its own exchange so parallel runs never see each other's events.
func MustNewDeps(t *testing.T) *Deps {
	t.Helper()

	env := itinfra.LoadEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	require.NoError(t, itinfra.WaitPostgres(ctx, env.PostgresDSN), env.String())
	require.NoError(t, itinfra.WaitRedis(ctx, env.RedisAddr), env.String())
	require.NoError(t, itinfra.WaitRabbit(ctx, env.RabbitURL), env.String())

	db, err := config.NewDB(env.PostgresDSN, false)
	require.NoError(t, err)
	require.NoError(t, pg.Migrate(ctx, db, "up"))

	rc := redis.New(env.RedisAddr, "", 0)
	require.NoError(t, rc.Ping(ctx))

	conn, err := amqp.Dial(env.RabbitURL)
	require.NoError(t, err)

	exchange := fmt.Sprintf("identity.it.%s", uuid.NewString())
	pub, err := rabbitmq.NewPublisher(env.RabbitURL, exchange)
	require.NoError(t, err)

	d := &Deps{
		DB:        db,
		Redis:     rc,
		AMQP:      conn,
		Exchange:  exchange,
		Users:     pg.NewUserDirectory(db),
		Issuer:    security.NewJWTIssuer(itSecret, "identity-service-it"),
		Pub:       pub,
		Screening: itinfra.NewFakeScreening(t),
	}

	d.Svc = auth.NewService(
		d.Users,
		security.NewBcryptHasher(bcrypt.MinCost),
		screening.NewClient(d.Screening.URL, 2*time.Second, nil),
		d.Issuer,
		auth.WithProfileCache(redis.NewProfileCache(rc, time.Minute)),
		auth.WithPublisher(pub),
	)

	t.Cleanup(d.close)
	return d
}

func (d *Deps) close() {
	_ = d.Pub.Close()
	_ = d.AMQP.Close()
	_ = d.Redis.Close()
	_ = d.DB.Close()
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s+%s@example.com", prefix, uuid.NewString()[:8])
}
