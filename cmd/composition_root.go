package cmd

import (
	"github.com/redis/go-redis/v9"

	"parceltrack/internal/adapters/out/authbridge"
	"parceltrack/internal/adapters/out/kv/parcelrepo"
	"parceltrack/internal/adapters/out/kv/profilerepo"
	redisadapter "parceltrack/internal/adapters/out/redis"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
)

type CompositionRoot struct {
	redisClient *redis.Client
	store       *redisadapter.Store
	parcels     *parcelrepo.Repository
	profiles    *profilerepo.Repository
	gate        services.AccessGate
	verifier    *authbridge.TokenVerifier
}

func NewCompositionRoot(config Config) CompositionRoot {
	client := redisadapter.NewClient(config.RedisAddr, config.RedisPassword, config.RedisDB)
	store := redisadapter.NewStore(client, config.StoreTimeout)

	return CompositionRoot{
		redisClient: client,
		store:       store,
		parcels:     parcelrepo.NewRepository(store),
		profiles:    profilerepo.NewRepository(store),
		gate:        services.NewAccessGate(),
		verifier:    authbridge.NewTokenVerifier(config.JWTSecret),
	}
}

func (c *CompositionRoot) Close() error {
	return c.redisClient.Close()
}

func (c *CompositionRoot) TokenVerifier() *authbridge.TokenVerifier {
	return c.verifier
}

func (c *CompositionRoot) ProfileRepository() ports.ProfileRepository {
	return c.profiles
}

func (c *CompositionRoot) CreateRegisterParcelCommandHandler() commands.RegisterParcelCommandHandler {
	return commands.NewRegisterParcelCommandHandler(c.gate, c.parcels)
}

func (c *CompositionRoot) CreateUpdateParcelStatusCommandHandler() commands.UpdateParcelStatusCommandHandler {
	return commands.NewUpdateParcelStatusCommandHandler(c.gate, c.parcels)
}

func (c *CompositionRoot) CreateRebuildIndexesCommandHandler() commands.RebuildIndexesCommandHandler {
	return commands.NewRebuildIndexesCommandHandler(c.parcels)
}

func (c *CompositionRoot) CreateGetParcelByReferenceQueryHandler() queries.GetParcelByReferenceQueryHandler {
	return queries.NewGetParcelByReferenceQueryHandler(c.gate, c.parcels)
}

func (c *CompositionRoot) CreateListParcelsQueryHandler() queries.ListParcelsQueryHandler {
	return queries.NewListParcelsQueryHandler(c.gate, c.parcels)
}
