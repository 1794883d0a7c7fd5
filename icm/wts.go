// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package icm

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// LayerWts is the JSON weight state for one affine layer.
type LayerWts struct {
	Layer string
	NIn   int
	NOut  int
	Wt    []float32
	Bias  []float32
}

// NetWts is the JSON weight state for the whole module.
type NetWts struct {
	Network string
	Layers  []LayerWts
}

// SaveWtsJSON saves all network weights to given file in JSON format,
// gzipped if the filename ends in .gz.
func (ic *ICM) SaveWtsJSON(filename string) error {
	fp, err := os.Create(filename)
	defer fp.Close()
	if err != nil {
		log.Println(err)
		return err
	}
	ext := filepath.Ext(filename)
	if ext == ".gz" {
		gzr := gzip.NewWriter(fp)
		err = ic.WriteWtsJSON(gzr)
		gzr.Close()
	} else {
		bw := bufio.NewWriter(fp)
		err = ic.WriteWtsJSON(bw)
		bw.Flush()
	}
	return err
}

// OpenWtsJSON opens network weights from given file in JSON format,
// gzipped if the filename ends in .gz.
func (ic *ICM) OpenWtsJSON(filename string) error {
	fp, err := os.Open(filename)
	defer fp.Close()
	if err != nil {
		log.Println(err)
		return err
	}
	ext := filepath.Ext(filename)
	if ext == ".gz" {
		gzr, err := gzip.NewReader(fp)
		defer gzr.Close()
		if err != nil {
			log.Println(err)
			return err
		}
		return ic.ReadWtsJSON(gzr)
	}
	return ic.ReadWtsJSON(bufio.NewReader(fp))
}

// WriteWtsJSON writes the weights from this module in a JSON text format.
func (ic *ICM) WriteWtsJSON(w io.Writer) error {
	nw := NetWts{Network: "ICM"}
	for _, al := range ic.Layers() {
		lw := LayerWts{Layer: al.Nm, NIn: al.NIn, NOut: al.NOut}
		lw.Wt = append(lw.Wt, al.Wt.Values...)
		lw.Bias = append(lw.Bias, al.Bias.Values...)
		nw.Layers = append(nw.Layers, lw)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(&nw)
}

// ReadWtsJSON reads the weights from a JSON text format into this module,
// matching layers by name.  Dimensions must match the configured module.
func (ic *ICM) ReadWtsJSON(r io.Reader) error {
	nw := NetWts{}
	if err := json.NewDecoder(r).Decode(&nw); err != nil {
		log.Println(err)
		return err
	}
	lmap := make(map[string]*Affine)
	for _, al := range ic.Layers() {
		lmap[al.Nm] = al
	}
	for _, lw := range nw.Layers {
		al, ok := lmap[lw.Layer]
		if !ok {
			err := fmt.Errorf("icm: ReadWtsJSON layer not found: %s", lw.Layer)
			log.Println(err)
			return err
		}
		if lw.NIn != al.NIn || lw.NOut != al.NOut {
			return fmt.Errorf("%w: layer %s dims %d x %d != configured %d x %d", ErrShape, lw.Layer, lw.NOut, lw.NIn, al.NOut, al.NIn)
		}
		copy(al.Wt.Values, lw.Wt)
		copy(al.Bias.Values, lw.Bias)
	}
	return nil
}
