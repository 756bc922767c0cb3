// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cfg1 makes it possible to load configuration settings with
// version 1.x.y since all minor and patch versions (which are known)
// with the same major version, can be loaded with one implementation.
// When trying to serialize and write out settings, the latest known
// minor and patch version will be used since older versions (with the
// same major version) can ignore the extra fields too.
package cfg1

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/momeni/parkwatch/pkg/adapter/cache/redis/spotscache"
	"github.com/momeni/parkwatch/pkg/adapter/config/comment"
	"github.com/momeni/parkwatch/pkg/adapter/config/settings"
	"github.com/momeni/parkwatch/pkg/adapter/config/vers"
	"github.com/momeni/parkwatch/pkg/adapter/db/postgres"
	"github.com/momeni/parkwatch/pkg/adapter/db/postgres/schemarp"
	"github.com/momeni/parkwatch/pkg/adapter/db/postgres/spotsrp"
	"github.com/momeni/parkwatch/pkg/adapter/hash/scram"
	"github.com/momeni/parkwatch/pkg/adapter/metrics/prom"
	"github.com/momeni/parkwatch/pkg/adapter/restful/gin"
	"github.com/momeni/parkwatch/pkg/core/log"
	"github.com/momeni/parkwatch/pkg/core/model"
	"github.com/momeni/parkwatch/pkg/core/repo"
	scrami "github.com/momeni/parkwatch/pkg/core/scram"
	"github.com/momeni/parkwatch/pkg/core/usecase/initdbuc"
	"github.com/momeni/parkwatch/pkg/core/usecase/spotsuc"
)

// These constants define the major, minor, and patch version of the
// configuration settings which are supported by the Config struct.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the semantic version of Config struct.
var Version = model.SemVer{Major, Minor, Patch}

// These environment variables override their corresponding settings
// from the configuration file, if they are set and non-empty.
const (
	EnvDatabaseHost = "PKWEB_DATABASE_HOST"
	EnvRedisAddress = "PKWEB_REDIS_ADDRESS"
)

// DefaultAddress is the listening address of the REST API server
// when no gin.address is configured.
const DefaultAddress = ":8080"

// Config contains all settings which are required by different parts
// of the project following the v1.x.y format, such as adapters or
// use cases. It is preferred to implement Config with primitive fields
// or other structs which are defined locally, not models or structs
// which are defined in lower layers, so the configuration can be
// versioned and kept intact while other layers can change freely.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Logging  Logging  // slog handler settings
	Redis    Redis    // optional snapshot cache settings
	Metrics  Metrics  // Prometheus metrics exposition settings
	Usecases Usecases // Configuration settings for supported use cases

	// Vers contains the configuration file and database schema version
	// strings corresponding to this Config instance and its Database
	// target.
	Vers vers.Config `yaml:",inline"`

	// Comments contains the YAML comment lines which are written right
	// before the actual settings lines, aka head-comments.
	// These comments are preserved for top-level settings and their
	// children sequence and mapping YAML nodes, so a loaded config
	// file may be written out again (e.g., by the config show command)
	// without losing its documentation.
	Comments *comment.Comment `yaml:"-"`
}

var _ initdbuc.Settings = (*Config)(nil)

// Database contains the database related configuration settings.
type Database struct {
	Host    string // domain name or IP address of the DBMS server
	Port    int    // port number of the DBMS server
	Name    string // database name, like pkweb
	PassDir string `yaml:"pass-dir"` // path of the passwords dir

	// RoleSuffix specifies a possibly empty suffix for the database
	// role names. Normally, repo.AdminRole and repo.NormalRole roles
	// are used. In the parallel test cases, it is required to create
	// multiple non-colliding roles in the same database cluster and
	// so having a unique (per test) role suffix helps with parallelism.
	RoleSuffix repo.Role `yaml:"role-suffix,omitempty"`

	// AuthMethod specifies the database authentication method name.
	// This method indicates how passwords should be hashed and stored
	// in the database, so they may be used by an authentication
	// operation successfully.
	// Currently, only scram-sha-1 and scram-sha-256 methods are
	// supported. The scram-sha-256 is the default value.
	AuthMethod string `yaml:"auth-method,omitempty"`

	// hasher is instantiated based on the AuthMethod and is used by
	// the NewSchemaRepo method, so Schema repo instances may hash
	// passwords properly (as expected by the DBMS).
	hasher scrami.Hasher `yaml:"-"`
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx, r)
	if err != nil {
		return nil, fmt.Errorf(
			"%#v.ConnectionPool: %w", c.Database, err,
		)
	}
	return p, nil
}

// NewSchemaRepo instantiates a fresh Schema repository.
// Role names may be optionally suffixed based on the settings and
// in that case, repo.Role role names which are passed to the
// ConnectionPool method or RenewPasswords will be suffixed
// automatically.
func (c *Config) NewSchemaRepo() repo.Schema {
	return c.Database.NewSchemaRepo()
}

// NewSpotsRepo instantiates a fresh Spots repository.
func (c *Config) NewSpotsRepo() repo.Spots {
	return spotsrp.New()
}

// RenewPasswords generates new secure passwords for the given roles
// and after recording them in a temporary file, will use the change
// function in order to update the passwords of those roles in the
// database too. See Database.RenewPasswords for details.
func (c *Config) RenewPasswords(
	ctx context.Context,
	change func(
		ctx context.Context, roles []repo.Role, passwords []string,
	) error,
	roles ...repo.Role,
) (finalizer func() error, err error) {
	return c.Database.RenewPasswords(ctx, change, roles...)
}

// SchemaVersion returns the semantic version of the database schema
// which its connection information are kept by this Config struct.
// There is no direct dependency between the configuration file and
// database schema versions.
func (c *Config) SchemaVersion() model.SemVer {
	return c.Vers.Versions.Database
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `d` settings.
// Initially, the .pgpass file in the d.PassDir folder is checked
// which should conform with the pgpass format with lines like this:
//
//	host:port:dbname:role:password
//
// If a database connection could be established, created pool and nil
// error will be returned. Otherwise, passwords might have been updated
// during a previous incomplete initialization. So the .pgpass.new
// file in the same d.PassDir folder is checked too. If a connection
// could be established successfully, the .pgpass.new will be moved to
// the .pgpass file, so the .pgpass.new file may be overwritten safely
// by the subsequent initialization operations.
//
// The `d.RoleSuffix` will be appended to the given `r` role name too.
func (d Database) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	path := filepath.Join(d.PassDir, ".pgpass")
	u, err := d.ConnectionURL(r, path)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", path, err)
	}
	p, err := postgres.NewPool(ctx, u)
	if err == nil {
		return p, nil
	}
	newPath := filepath.Join(d.PassDir, ".pgpass.new")
	log.Warn(
		ctx, "trying the new pass-file",
		slog.String("failed", path),
		slog.String("next", newPath),
		log.Err("error", err),
	)
	u, err = d.ConnectionURL(r, newPath)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", newPath, err)
	}
	p, err = postgres.NewPool(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("can use neither pass-file: %w", err)
	}
	if err = os.Rename(newPath, path); err != nil {
		p.Close()
		return nil, fmt.Errorf("os.Rename: %w", err)
	}
	return p, nil
}

// ConnectionURL returns the database connection URL embedding the host,
// port, role name, database name, and password value. These items are
// directly taken from the `d` settings, but the role name which is
// specified by the `r` argument and the password value which is read
// from the given `path` file. Returned URL has the postgresql scheme.
// The `path` file may contain empty or `#`-commented lines in addition
// to the password specifying lines which should conform with the pgpass
// files format with lines like this:
//
//	host:port:dbname:role:password
func (d Database) ConnectionURL(
	r repo.Role, path string,
) (string, error) {
	passLines, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	r = r + d.RoleSuffix
	prfx := fmt.Sprintf("%s:%d:%s:%s:", d.Host, d.Port, d.Name, r)
	var pass string
	for _, line := range strings.Split(string(passLines), "\n") {
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, prfx) {
			pass = line[len(prfx):]
			break
		}
	}
	if pass == "" {
		return "", fmt.Errorf("no matching password line")
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(string(r), pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String(), nil
}

// NewSchemaRepo instantiates a fresh Schema repository.
// The expected passwords hashing format of the target database must be
// configured in the `d.AuthMethod` field. Also, ValidateAndNormalize
// method is expected to be called beforehand, so it can create a hasher
// instance based on it.
func (d Database) NewSchemaRepo() repo.Schema {
	return schemarp.New(d.RoleSuffix, d.hasher)
}

// RenewPasswords generates new secure passwords for the given roles
// and after recording them in a temporary file (i.e., .pgpass.new file
// in the `d.PassDir` directory), will use the `change` function in
// order to update the passwords of those `roles` in the database too.
// The `change` function argument should perform the update operation
// in a transaction which may or may not be committed when the
// RenewPasswords function returns. In case of a successful commitment,
// the temporary passwords file should be moved over the main passwords
// file (i.e., .pgpass file in the `d.PassDir` directory) using the
// returned finalizer function.
//
// The `d.RoleSuffix` will be appended to the given role names too.
// The `change` function must add the same suffix to `roles` roles names
// in order to remain consistent with the in-file recorded information.
func (d Database) RenewPasswords(
	ctx context.Context,
	change func(
		ctx context.Context, roles []repo.Role, passwords []string,
	) error,
	roles ...repo.Role,
) (finalizer func() error, err error) {
	passwords := make([]string, len(roles))
	b := make([]byte, 16) // 128 bits
	enc := base64.RawStdEncoding
	p := make([]byte, enc.EncodedLen(len(b))) // for each password
	prfx := fmt.Sprintf("%s:%d:%s", d.Host, d.Port, d.Name)
	lines := make([]string, len(passwords))
	for i, r := range roles {
		if _, err = rand.Read(b); err != nil {
			return nil, fmt.Errorf("rand.Read for i=%d: %w", i, err)
		}
		enc.Encode(p, b)
		passwords[i] = string(p)
		r = r + d.RoleSuffix
		lines[i] = fmt.Sprintf("%s:%s:%s\n", prfx, r, passwords[i])
	}
	orgPath := filepath.Join(d.PassDir, ".pgpass")
	newPath := filepath.Join(d.PassDir, ".pgpass.new")
	finalizer = func() error {
		return os.Rename(newPath, orgPath)
	}
	err = os.WriteFile(newPath, []byte(strings.Join(lines, "")), 0o600)
	if err != nil {
		return nil, fmt.Errorf("writing %q file: %w", newPath, err)
	}
	if err = change(ctx, roles, passwords); err != nil {
		return nil, fmt.Errorf("passwords change callback: %w", err)
	}
	return finalizer, nil
}

// ValidateAndNormalize validates the database settings and returns an
// error if they were not acceptable. It can also modify settings in
// order to normalize them or replace some zero values with their
// expected default values (if any). So, it takes a pointer receiver
// instead of a non-reference receiver (in contrast to other methods).
func (d *Database) ValidateAndNormalize() error {
	switch am := d.AuthMethod; am {
	case "scram-sha-1":
		d.hasher = scram.SHA1()
	case "":
		d.AuthMethod = "scram-sha-256"
		fallthrough
	case "scram-sha-256":
		d.hasher = scram.SHA256()
	default:
		return fmt.Errorf(
			"unsupported database authentication method: %q", am,
		)
	}
	if d.Port <= 0 || d.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", d.Port)
	}
	return nil
}

// Gin contains the gin-gonic related configuration settings.
// Logger and Recovery are pointers, so an omitted setting can be
// told apart from an explicit false value. Both are normalized to
// false by the ValidateAndNormalize method.
type Gin struct {
	Logger   *bool  // Whether to log each request with the slog logger
	Recovery *bool  // Whether to recover from the handlers panics
	Address  string // host:port of the REST API server
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings. The `l` logger is used by the request logging and
// panic recovery middlewares.
func (g Gin) NewEngine(l *slog.Logger) *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger(l))
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery(l))
	}
	return gin.New(middlewares...)
}

// Logging contains the slog handler settings.
type Logging struct {
	Level  string // one of debug, info, warn, or error
	Format string // text or json
}

// NewLogger creates a logger which writes to `w` following the `lg`
// settings. ValidateAndNormalize must be called beforehand.
func (lg Logging) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := log.ParseLevel(lg.Level)
	if err != nil {
		return nil, err
	}
	return log.NewLogger(w, level, lg.Format)
}

// Redis contains the optional snapshot cache settings.
// An empty Address disables the cache.
type Redis struct {
	Address string // host:port of the Redis server
	DB      int    // database number
	Key     string // key of the cached snapshot
}

// NewCache connects to the configured Redis server and returns a
// snapshot cache with a function which closes its connections.
// If no Address is configured, a nil cache, nil closer, and nil error
// are returned.
func (r Redis) NewCache(ctx context.Context) (
	*spotscache.Cache, func() error, error,
) {
	if r.Address == "" {
		return nil, nil, nil
	}
	rdb, err := spotscache.Dial(ctx, r.Address, r.DB)
	if err != nil {
		return nil, nil, err
	}
	return spotscache.New(rdb, r.Key), rdb.Close, nil
}

// Metrics contains the Prometheus exposition settings.
type Metrics struct {
	Enabled *bool // Whether to measure use cases and serve /metrics
}

// NewObserver creates a Prometheus observer if metrics are enabled.
// Otherwise, it returns nil.
func (m Metrics) NewObserver() *prom.Observer {
	if !*m.Enabled {
		return nil
	}
	return prom.New()
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Spots Spots // parking spots use cases related settings
}

// Spots contains the configuration settings for the parking spots
// use cases. Nil fields are left uninitialized, so the use cases
// layer may select their default values.
type Spots struct {
	// RefreshInterval indicates how often the whole set of parking
	// spots should be replaced.
	RefreshInterval *settings.Duration `yaml:"refresh-interval"`
	// MinRefreshInterval is the inclusive minimum acceptable value
	// for the RefreshInterval setting.
	// A missing value indicates that there is no lower bound.
	MinRefreshInterval *settings.Duration `yaml:"refresh-interval-minimum"`
	// MaxRefreshInterval is the inclusive maximum acceptable value
	// for the RefreshInterval setting.
	// A missing value indicates that there is no upper bound.
	MaxRefreshInterval *settings.Duration `yaml:"refresh-interval-maximum"`

	DefaultFilter   Filter    `yaml:"default-filter"`
	DefaultLocation *Location `yaml:"default-location"`
	Mock            Mock
}

// NewUseCase instantiates a new spots use case based on the settings
// in the `s` struct. The `opts` are appended after the options which
// are computed from the settings.
func (s Spots) NewUseCase(
	p repo.Pool, r repo.Spots, src spotsuc.Source, opts ...spotsuc.Option,
) (*spotsuc.UseCase, error) {
	all := make([]spotsuc.Option, 0, 3+len(opts))
	if s.RefreshInterval != nil {
		d := time.Duration(*s.RefreshInterval)
		all = append(all, spotsuc.WithRefreshInterval(d))
	}
	all = append(all, spotsuc.WithDefaultFilter(s.DefaultFilter.Model()))
	if s.DefaultLocation != nil {
		all = append(
			all, spotsuc.WithDefaultLocation(s.DefaultLocation.Model()),
		)
	}
	all = append(all, opts...)
	return spotsuc.New(p, r, src, all...)
}

// NewSpotsUseCase wires the spots use case with the mock source, the
// spots repository, and the optional cache and observer. The `obs`
// may be nil when metrics are disabled. The returned closer releases
// the cache connections and must be called when the use case is not
// needed anymore.
func (c *Config) NewSpotsUseCase(
	ctx context.Context, p repo.Pool, obs *prom.Observer,
) (*spotsuc.UseCase, func() error, error) {
	src, err := c.Usecases.Spots.Mock.NewSource()
	if err != nil {
		return nil, nil, fmt.Errorf("creating spots source: %w", err)
	}
	closer := func() error { return nil }
	opts := make([]spotsuc.Option, 0, 2)
	cache, closeCache, err := c.Redis.NewCache(ctx)
	switch {
	case err != nil:
		log.Warn(
			ctx, "snapshot cache is disabled",
			slog.String("address", c.Redis.Address),
			log.Err("error", err),
		)
	case cache != nil:
		opts = append(opts, spotsuc.WithCache(cache))
		closer = closeCache
	}
	if obs != nil {
		opts = append(opts, spotsuc.WithObserver(obs))
	}
	uc, err := c.Usecases.Spots.NewUseCase(p, c.NewSpotsRepo(), src, opts...)
	if err != nil {
		_ = closer()
		return nil, nil, fmt.Errorf("creating spots use case: %w", err)
	}
	return uc, closer, nil
}

// Load unmarshals the data byte slice and loads a Config instance
// assuming that it contains the Config settings. Extra items in the
// data will be ignored and missing items will take their default
// values. The PKWEB_DATABASE_HOST and PKWEB_REDIS_ADDRESS environment
// variables override their corresponding settings. Thereafter, loaded
// Config will be validated and normalized in order to ensure that
// provided settings are acceptable (for example the major version
// which is reported by data settings must match with number 1 which
// is the major version of this config package).
func Load(ctx context.Context, data []byte) (*Config, error) {
	n := &yaml.Node{}
	if err := yaml.Unmarshal(data, n); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if l := len(n.Content); l != 1 {
		return nil, fmt.Errorf(
			"found %d children nodes, instead of 1 mapping child", l,
		)
	}
	c := &Config{}
	if err := n.Decode(c); err != nil {
		return nil, fmt.Errorf("decoding yaml node: %w", err)
	}
	c.overrideByEnv()
	if err := c.ValidateAndNormalize(ctx); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	cmnts, err := comment.LoadFrom(n.Content[0])
	if err != nil {
		return nil, fmt.Errorf("parsing comments: %w", err)
	}
	c.Comments = cmnts
	return c, nil
}

func (c *Config) overrideByEnv() {
	if h := os.Getenv(EnvDatabaseHost); h != "" {
		c.Database.Host = h
	}
	if a := os.Getenv(EnvRedisAddress); a != "" {
		c.Redis.Address = a
	}
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some zero values with
// their expected default values (if any).
//
// A refresh interval which falls out of its minimum/maximum boundary
// values takes the nearest boundary value and the violation is logged
// as a warning. However, inconsistent boundary values are rejected.
func (c *Config) ValidateAndNormalize(ctx context.Context) error {
	if err := c.Vers.Validate(Major, Minor); err != nil {
		return fmt.Errorf(
			"expecting version v%d.%d: %w", Major, Minor, err,
		)
	}
	settings.Nil2Zero(&c.Gin.Logger)
	settings.Nil2Zero(&c.Gin.Recovery)
	if c.Gin.Address == "" {
		c.Gin.Address = DefaultAddress
	}
	settings.Nil2Zero(&c.Metrics.Enabled)
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("validating logging settings: %w", err)
	}
	switch c.Logging.Format {
	case "":
		c.Logging.Format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("invalid logging format: %q", c.Logging.Format)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("negative redis database: %d", c.Redis.DB)
	}
	if c.Redis.Key == "" {
		c.Redis.Key = spotscache.DefaultKey
	}
	if err := c.Usecases.Spots.validateAndNormalize(ctx); err != nil {
		return fmt.Errorf("validating spots settings: %w", err)
	}
	return nil
}

func (s *Spots) validateAndNormalize(ctx context.Context) error {
	for name, d := range map[string]*settings.Duration{
		"refresh interval":         s.RefreshInterval,
		"minimum refresh interval": s.MinRefreshInterval,
		"maximum refresh interval": s.MaxRefreshInterval,
	} {
		if d != nil && *d <= 0 {
			return fmt.Errorf(
				"%s must be positive: %v", name, time.Duration(*d),
			)
		}
	}
	if err := settings.VerifyRange(
		&s.RefreshInterval, s.MinRefreshInterval, s.MaxRefreshInterval,
	); err != nil {
		if err.InvalidRange {
			return fmt.Errorf(
				"VerifyRange(minb=%v, maxb=%v): %w",
				time.Duration(*s.MinRefreshInterval),
				time.Duration(*s.MaxRefreshInterval),
				err,
			)
		}
		log.Warn(
			ctx,
			"refresh interval is adjusted by boundary values",
			log.Valuer("value", err.Value),
			log.Valuer("minb", s.MinRefreshInterval),
			log.Valuer("maxb", s.MaxRefreshInterval),
			log.Err("violation", err),
		)
	}
	if err := s.DefaultFilter.validate(); err != nil {
		return fmt.Errorf("default filter: %w", err)
	}
	if s.DefaultLocation != nil {
		if err := s.DefaultLocation.validate(); err != nil {
			return fmt.Errorf("default location: %w", err)
		}
	}
	if err := s.Mock.validate(); err != nil {
		return fmt.Errorf("mock source: %w", err)
	}
	return nil
}

// Marshalled struct contains a field for each one of the Config struct
// fields. The field names may be different for simplicity, but the
// yaml tag of fields are chosen to have consistent names after the
// serialization operation. The types of those fields are the same if
// their default serialization format is acceptable, otherwise, they
// will be serialized manually using the Marshal method and their
// target primitive types will be used in the Marshalled struct.
type Marshalled struct {
	Database Database
	Gin      Gin
	Logging  Logging
	Redis    Redis
	Metrics  Metrics
	Usecases struct {
		Spots struct {
			Interval    *string   `yaml:"refresh-interval,omitempty"`
			MinInterval *string   `yaml:"refresh-interval-minimum,omitempty"`
			MaxInterval *string   `yaml:"refresh-interval-maximum,omitempty"`
			Filter      Filter    `yaml:"default-filter"`
			Location    *Location `yaml:"default-location,omitempty"`
			Mock        Mock
		}
	}
	Vers *vers.Marshalled `yaml:",inline"`
}

// MarshalYAML computes an instance of the Marshalled struct, as created
// by the Marshal method, so it may be marshalled instead of the `c`
// Config instance. Thereafter, it encodes *Marshalled as a yaml node
// instance and saves the preserved head `c.Comments` (if any) into
// the resulting *yaml.Node instance (and returns it as an interface{}).
func (c *Config) MarshalYAML() (interface{}, error) {
	m := c.Marshal()
	n := &yaml.Node{}
	if err := n.Encode(m); err != nil {
		return nil, fmt.Errorf("encoding *Marshalled as YAML: %w", err)
	}
	if err := c.Comments.SaveInto(n); err != nil {
		return nil, fmt.Errorf("saving YAML nodes comments: %w", err)
	}
	return n, nil
}

// Marshal creates an instance of the Marshalled struct and fills it
// with the `c` Config instance contents. Durations are replaced by
// their human-readable strings and versions are delegated to the
// vers package Marshal method.
func (c *Config) Marshal() *Marshalled {
	m := &Marshalled{
		Database: c.Database,
		Gin:      c.Gin,
		Logging:  c.Logging,
		Redis:    c.Redis,
		Metrics:  c.Metrics,
	}
	s := c.Usecases.Spots
	m.Usecases.Spots.Interval = s.RefreshInterval.Marshal()
	m.Usecases.Spots.MinInterval = s.MinRefreshInterval.Marshal()
	m.Usecases.Spots.MaxInterval = s.MaxRefreshInterval.Marshal()
	m.Usecases.Spots.Filter = s.DefaultFilter
	m.Usecases.Spots.Location = s.DefaultLocation
	m.Usecases.Spots.Mock = s.Mock
	m.Vers = c.Vers.Marshal()
	return m
}

// Version returns the semantic version of this Config struct contents
// which its major version is equal to 1, while its minor and patch
// versions may correspond to the Minor and Patch constants or may
// describe an older version (with the same major version).
func (c *Config) Version() model.SemVer {
	return c.Vers.Versions.Config
}

// MajorVersion returns the major semantic version of this Config
// struct. It does not depend on the `c` contents and may be called
// with a nil receiver too.
func (c *Config) MajorVersion() uint {
	return Major
}
