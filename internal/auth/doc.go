// Package auth handles credential storage and login throttling.
//
// Passwords are checked by equality. With the default "plain" storage the
// credential is stored verbatim, which is insecure and kept only for
// compatibility with existing data; "bcrypt" stores a hash instead while the
// "password matches" contract stays the same.
//
// # Configuration
//
//	AUTH_PASSWORD_STORAGE=plain    # plain (default) or bcrypt
//	AUTH_BCRYPT_COST=12            # bcrypt cost factor
//	AUTH_MAX_LOGIN_ATTEMPTS=5      # failures before lockout, 0 disables throttling
//	AUTH_RATE_LIMIT_WINDOW=15m     # window for counting failures
//	AUTH_LOCKOUT_DURATION=30m      # lockout length
//	REDIS_ADDR=localhost:6379      # share throttling state across instances
//
// # Usage
//
//	hasher := auth.NewPasswordHasher(cfg.Auth)
//	limiter := auth.NewLoginLimiter(cfg.Auth, redisClient)
//	defer limiter.Stop()
package auth
