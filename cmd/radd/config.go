// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dalzilio/radd"
	"github.com/go-logr/logr"
	log "github.com/sirupsen/logrus"
	"sigs.k8s.io/yaml"
)

// Config is the content of a manager configuration file. Zero values keep
// the defaults of package radd.
type Config struct {
	Nodesize        int    `json:"nodesize,omitempty"`
	Maxnodesize     int    `json:"maxnodesize,omitempty"`
	Maxnodeincrease int    `json:"maxnodeincrease,omitempty"`
	Minfreenodes    int    `json:"minfreenodes,omitempty"`
	Cachesize       int    `json:"cachesize,omitempty"`
	Cacheratio      int    `json:"cacheratio,omitempty"`
	Timeout         string `json:"timeout,omitempty"`
	Pollinterval    int    `json:"pollinterval,omitempty"`
	Autodyn         int    `json:"autodyn,omitempty"`
	Order           []int  `json:"order,omitempty"`
}

func LoadConfig(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration file %s: %v", file, err)
	}
	return cfg, nil
}

// Options translates the configuration into options for radd.New.
func (c *Config) Options(logger logr.Logger) ([]radd.Option, error) {
	options := []radd.Option{radd.Logger(logger)}
	if c.Nodesize > 0 {
		options = append(options, radd.Nodesize(c.Nodesize))
	}
	if c.Maxnodesize > 0 {
		options = append(options, radd.Maxnodesize(c.Maxnodesize))
	}
	if c.Maxnodeincrease > 0 {
		options = append(options, radd.Maxnodeincrease(c.Maxnodeincrease))
	}
	if c.Minfreenodes > 0 {
		options = append(options, radd.Minfreenodes(c.Minfreenodes))
	}
	if c.Cachesize > 0 {
		options = append(options, radd.Cachesize(c.Cachesize))
	}
	if c.Cacheratio > 0 {
		options = append(options, radd.Cacheratio(c.Cacheratio))
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %v", c.Timeout, err)
		}
		options = append(options, radd.Timeout(d), radd.TimeoutHandler(func(m *radd.Manager) {
			log.Warningf("deadline %s exceeded", m.Deadline().Format(time.RFC3339))
		}))
	}
	if c.Pollinterval > 0 {
		options = append(options, radd.Pollinterval(c.Pollinterval))
	}
	if c.Autodyn > 0 {
		options = append(options, radd.Autodyn(c.Autodyn, reverse))
	}
	return options, nil
}

// reverse is the orderer used for automatic reordering.
func reverse(order []int) []int {
	res := make([]int, len(order))
	for k, v := range order {
		res[len(order)-1-k] = v
	}
	return res
}
