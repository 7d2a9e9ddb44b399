package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	ErrDisabled   = errors.New("photo storage disabled")
	ErrForeignKey = errors.New("photo key outside barbershop prefix")
)

// KeyPrefix é a pasta da barbearia no bucket.
func KeyPrefix(barbershopID uint) string {
	return fmt.Sprintf("barbershops/%d/", barbershopID)
}

// OwnedBy diz se a chave fica dentro da pasta da barbearia.
func OwnedBy(barbershopID uint, key string) bool {
	prefix := KeyPrefix(barbershopID)
	return len(key) > len(prefix) &&
		strings.HasPrefix(key, prefix) &&
		!strings.Contains(key, "..")
}

type Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	URLExpiry time.Duration
}

// PhotoStore resolve e remove as fotos dos profissionais. O upload é feito
// pelo painel direto no bucket; aqui só guardamos a chave.
type PhotoStore struct {
	bucket  string
	expiry  time.Duration
	client  *s3.Client
	presign *s3.PresignClient
}

// NewPhotoStore devolve nil quando não há bucket configurado; os métodos
// aceitam receiver nil.
func NewPhotoStore(opts Options) *PhotoStore {
	if opts.Bucket == "" {
		return nil
	}
	if opts.URLExpiry <= 0 {
		opts.URLExpiry = time.Hour
	}

	s3opts := s3.Options{
		Region: opts.Region,
	}
	if opts.AccessKey != "" {
		s3opts.Credentials = credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")
	}
	if opts.Endpoint != "" {
		s3opts.BaseEndpoint = aws.String(opts.Endpoint)
		s3opts.UsePathStyle = true
	}

	client := s3.New(s3opts)
	return &PhotoStore{
		bucket:  opts.Bucket,
		expiry:  opts.URLExpiry,
		client:  client,
		presign: s3.NewPresignClient(client),
	}
}

// URL devolve um link temporário de leitura; chave vazia devolve "".
func (p *PhotoStore) URL(ctx context.Context, barbershopID uint, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	if !OwnedBy(barbershopID, key) {
		return "", ErrForeignKey
	}
	if p == nil {
		return "", ErrDisabled
	}

	req, err := p.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}

func (p *PhotoStore) Delete(ctx context.Context, barbershopID uint, key string) error {
	if key == "" {
		return nil
	}
	if !OwnedBy(barbershopID, key) {
		return ErrForeignKey
	}
	if p == nil {
		return ErrDisabled
	}

	_, err := p.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
