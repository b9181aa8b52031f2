package core

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"software.sslmate.com/src/go-pkcs12"
)

// TLSConfig overrides server trust and/or presents a client identity. The
// zero value keeps the platform trust store with hostname verification.
type TLSConfig struct {
	Server ServerTLSConfig `json:"server" yaml:"server" toml:"server"`
	Client ClientIdentity  `json:"client" yaml:"client" toml:"client"`
}

type ServerTLSConfig struct {
	// PEM bundle of root certificates trusted in addition to the system pool.
	RootCAPath string `json:"rootCAPath" yaml:"root_ca_path" toml:"root_ca_path" env:"TLS_ROOT_CA_PATH" validate:"omitempty,file"`

	// SkipHostnameVerification accepts a server certificate issued for another
	// name as long as its chain is trusted. Meant for lab and test nodes only.
	SkipHostnameVerification bool `json:"skipHostnameVerification" yaml:"skip_hostname_verification" toml:"skip_hostname_verification" env:"TLS_SKIP_HOSTNAME_VERIFICATION"`
}

// ClientIdentity is a PKCS#12 bundle presented for mutual TLS.
type ClientIdentity struct {
	PKCS12Path     string `json:"pkcs12Path" yaml:"pkcs12_path" toml:"pkcs12_path" env:"TLS_PKCS12_PATH" validate:"omitempty,file"`
	PKCS12Password string `json:"pkcs12Password" yaml:"pkcs12_password" toml:"pkcs12_password" env:"TLS_PKCS12_PASSWORD"`
}

func (c ServerTLSConfig) isSet() bool {
	return c.RootCAPath != "" || c.SkipHostnameVerification
}

func (c ClientIdentity) isSet() bool {
	return c.PKCS12Path != ""
}

var validate = validator.New()

// Build turns the configuration into a *tls.Config. It returns nil when
// neither half is set. Unreadable or invalid material fails here with a
// *ConfigError, never on the first request.
func (c TLSConfig) Build() (*tls.Config, error) {
	if !c.Server.isSet() && !c.Client.isSet() {
		return nil, nil
	}

	if err := validate.Struct(c); err != nil {
		return nil, &ConfigError{Field: "tls", Err: err}
	}

	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}

	if c.Server.RootCAPath != "" {
		pool, err := loadRootCAs(c.Server.RootCAPath)
		if err != nil {
			return nil, &ConfigError{Field: "tls.server.rootCAPath", Err: err}
		}
		tlsConfig.RootCAs = pool
	}

	if c.Server.SkipHostnameVerification {
		logrus.Warnf("tls hostname verification disabled")
		skipHostnameVerification(tlsConfig)
	}

	if c.Client.isSet() {
		cert, err := loadIdentity(c.Client.PKCS12Path, c.Client.PKCS12Password)
		if err != nil {
			return nil, &ConfigError{Field: "tls.client.pkcs12Path", Err: err}
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

func loadRootCAs(path string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read root certificates")
	}

	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		logrus.Debugf("system cert pool unavailable, trusting %s only: %v", path, err)
		pool = x509.NewCertPool()
	}

	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.Errorf("no PEM certificate found in %s", path)
	}

	return pool, nil
}

func loadIdentity(path string, password string) (tls.Certificate, error) {
	pfx, err := os.ReadFile(path)
	if err != nil {
		return tls.Certificate{}, errors.Wrap(err, "read identity")
	}

	key, cert, caCerts, err := pkcs12.DecodeChain(pfx, password)
	if err != nil {
		return tls.Certificate{}, errors.Wrap(err, "decode pkcs12 identity")
	}

	chain := [][]byte{cert.Raw}
	for _, ca := range caCerts {
		chain = append(chain, ca.Raw)
	}

	return tls.Certificate{
		Certificate: chain,
		PrivateKey:  key,
		Leaf:        cert,
	}, nil
}

// skipHostnameVerification disables the built-in verification and replaces
// it with a chain-only check against the configured roots.
func skipHostnameVerification(tlsConfig *tls.Config) {
	roots := tlsConfig.RootCAs

	tlsConfig.InsecureSkipVerify = true
	tlsConfig.VerifyConnection = func(cs tls.ConnectionState) error {
		if len(cs.PeerCertificates) == 0 {
			return errors.New("server presented no certificate")
		}

		intermediates := x509.NewCertPool()
		for _, cert := range cs.PeerCertificates[1:] {
			intermediates.AddCert(cert)
		}

		_, err := cs.PeerCertificates[0].Verify(x509.VerifyOptions{
			Roots:         roots,
			Intermediates: intermediates,
		})

		return err
	}
}
