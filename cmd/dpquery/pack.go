package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/hupe1980/dataprovider/blobstore"
	"github.com/hupe1980/dataprovider/codec"
	"github.com/hupe1980/dataprovider/record"
	"github.com/hupe1980/dataprovider/snapshot"
	"github.com/spf13/cobra"
)

type packFlags struct {
	in          string
	out         string
	compression string
	codec       string
	kinds       []string
}

func newPackCommand(g *globalFlags) *cobra.Command {
	f := &packFlags{}

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Encode JSON records into a snapshot blob",
		Long: `Read a JSON array or JSON lines file of objects and write it as a snapshot.

Field kinds default to what JSON carries. Use --kind to convert fields,
for example --kind born:date --kind balance:decimal.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := g.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			n, err := runPack(cmd, f)
			if err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "snapshot written", "path", f.out, "records", n)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.in, "in", "", "input JSON file")
	fs.StringVar(&f.out, "out", "", "output snapshot path")
	fs.StringVar(&f.compression, "compression", "zstd", "payload compression (none, lz4, zstd)")
	fs.StringVar(&f.codec, "codec", codec.Default.Name(), "payload codec ("+strings.Join(codec.Names(), ", ")+")")
	fs.StringSliceVar(&f.kinds, "kind", nil, "field conversion as name:kind")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func runPack(cmd *cobra.Command, f *packFlags) (int, error) {
	comp, err := snapshot.ParseCompression(f.compression)
	if err != nil {
		return 0, err
	}
	c, ok := codec.ByName(f.codec)
	if !ok {
		return 0, fmt.Errorf("unknown codec %q", f.codec)
	}
	kinds, err := parseKinds(f.kinds)
	if err != nil {
		return 0, err
	}

	data, err := os.ReadFile(f.in)
	if err != nil {
		return 0, err
	}
	docs, err := decodeDocuments(data, kinds)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", f.in, err)
	}

	blob, err := snapshot.Encode(docs, func(o *snapshot.Options) {
		o.Codec = c
		o.Compression = comp
	})
	if err != nil {
		return 0, err
	}

	store := blobstore.NewLocalStore(filepath.Dir(f.out))
	if err := store.Put(cmd.Context(), filepath.Base(f.out), blob); err != nil {
		return 0, err
	}
	return len(docs), nil
}

func parseKinds(specs []string) (map[string]record.Kind, error) {
	kinds := make(map[string]record.Kind, len(specs))
	for _, s := range specs {
		name, kind, ok := strings.Cut(s, ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --kind %q, want name:kind", s)
		}
		k, err := record.ParseKind(kind)
		if err != nil {
			return nil, err
		}
		kinds[name] = k
	}
	return kinds, nil
}

func decodeDocuments(data []byte, kinds map[string]record.Kind) ([]record.Document, error) {
	data = bytes.TrimSpace(data)

	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var rows []map[string]any
	if len(data) > 0 && data[0] == '[' {
		if err := dec.Decode(&rows); err != nil {
			return nil, err
		}
	} else {
		for {
			var row map[string]any
			err := dec.Decode(&row)
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
	}

	schema := record.FieldSchema(kinds)
	docs := make([]record.Document, 0, len(rows))
	for i, row := range rows {
		doc, err := record.DocumentFromAny(row)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		for name, kind := range kinds {
			v, ok := doc[name]
			if !ok {
				continue
			}
			if doc[name], err = record.Convert(v, kind); err != nil {
				return nil, fmt.Errorf("record %d field %q: %w", i, name, err)
			}
		}
		if err := schema.Validate(doc); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
