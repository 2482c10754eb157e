package main

import (
	"strings"
)

var opts struct {
	Node struct {
		ID      string `long:"id" env:"ID" required:"true" description:"unique member id"`
		Name    string `long:"name" env:"NAME" description:"human-readable member name"`
		Primary bool   `long:"primary" env:"PRIMARY" description:"act as the primary member"`
	} `group:"node" namespace:"node" env-namespace:"NODE"`

	Gossip struct {
		BindAddr   string `long:"bind-addr" description:"address to bind the gossip listener" env:"BIND_ADDR" default:"0.0.0.0"`
		BindPort   int    `long:"bind-port" description:"port to bind the gossip listener" env:"BIND_PORT" default:"7946"`
		PublicAddr string `long:"public-addr" description:"address to advertise to other members" env:"PUBLIC_ADDR"`
		PublicPort int    `long:"public-port" description:"port to advertise to other members" env:"PUBLIC_PORT"`
	} `group:"gossip" namespace:"gossip" env-namespace:"GOSSIP"`

	Cluster struct {
		JoinAddrs    string `long:"join-addrs" description:"comma-separated list of members to join" env:"JOIN_ADDRS"`
		SettleDelay  int    `long:"settle-delay" description:"quiet period before a new view is delivered (ms)" env:"SETTLE_DELAY" default:"500"`
		JoinTimeout  int    `long:"join-timeout" description:"view installation timeout (ms)" env:"JOIN_TIMEOUT" default:"30000"`
		LeaveTimeout int    `long:"leave-timeout" description:"leave propagation timeout (ms)" env:"LEAVE_TIMEOUT" default:"5000"`
	} `group:"cluster" namespace:"cluster" env-namespace:"CLUSTER"`

	Queue struct {
		Capacity int `long:"capacity" description:"max messages waiting in each ingestion queue" env:"CAPACITY" default:"1024"`
		Workers  int `long:"workers" description:"number of workers per ingestion queue" env:"WORKERS" default:"1"`
	} `group:"queue" namespace:"queue" env-namespace:"QUEUE"`

	GRPC struct {
		BindAddr string `long:"bind-addr" description:"address to bind the grpc health server" env:"BIND_ADDR" default:":3000"`
	} `group:"grpc" namespace:"grpc" env-namespace:"GRPC"`

	RestAPI struct {
		Enabled  bool   `long:"enabled" description:"enable the status api" env:"ENABLED"`
		BindAddr string `long:"bind-addr" description:"address to bind the status api" env:"BIND_ADDR" default:":8000"`
	} `group:"api" namespace:"api" env-namespace:"API"`

	Verbose bool `long:"verbose" description:"verbose mode" env:"VERBOSE"`
}

func parseAddrs(addrs string) []string {
	sl := strings.Split(addrs, ",")
	res := make([]string, 0, len(sl))

	for _, addr := range sl {
		trimmed := strings.TrimSpace(addr)
		if trimmed != "" {
			res = append(res, trimmed)
		}
	}

	return res
}
