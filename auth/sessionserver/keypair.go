package sessionserver

import (
	"crypto/rsa"
	"fmt"

	"github.com/isitreallyalive/beacon/crypto"
)

// ServerKeyPair is the RSA keypair a Login implementation presents to
// clients in the Encryption Request packet. PublicKeySPKI is the exact
// byte form sent on the wire and folded into ComputeServerHash.
type ServerKeyPair struct {
	Private       *rsa.PrivateKey
	PublicKeySPKI []byte
}

// LoadServerKeyPair parses a PEM-encoded RSA private key and derives the
// keypair a Login handshake would use. If publicKeyPEM is non-empty, it is
// parsed and checked against the private key before its raw bytes are used
// as PublicKeySPKI directly, avoiding a re-encode of an already-SPKI PEM
// file. An empty publicKeyPEM derives PublicKeySPKI from the private key
// instead.
func LoadServerKeyPair(privateKeyPEM, publicKeyPEM string) (*ServerKeyPair, error) {
	priv, err := crypto.ParseRSAPrivateKey(privateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	if publicKeyPEM == "" {
		spki, err := crypto.ConvertPublicKeyToSPKI(&priv.PublicKey)
		if err != nil {
			return nil, fmt.Errorf("derive public key: %w", err)
		}
		return &ServerKeyPair{Private: priv, PublicKeySPKI: spki}, nil
	}

	pub, err := crypto.ParseRSAPublicKey(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	if pub.N.Cmp(priv.PublicKey.N) != 0 || pub.E != priv.PublicKey.E {
		return nil, fmt.Errorf("configured public key does not match private key")
	}

	spki, err := crypto.ExtractPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("extract public key bytes: %w", err)
	}
	return &ServerKeyPair{Private: priv, PublicKeySPKI: spki}, nil
}
