package main

import (
	"fmt"

	"gopkg.in/urfave/cli.v1"
)

var flags = []cli.Flag{
	cli.IntFlag{
		Name:  "debug, d",
		Value: 0,
		Usage: "debug-level: 1 for terse, 5 for maximal,",
	},
	cli.StringFlag{
		Name:  "config, c",
		Usage: "TOML configuration file, defaults are used when empty",
	},
}

var cmds = cli.Commands{
	{
		Name:    "simulate",
		Usage:   "Mine one block per transfer between the traders.",
		Aliases: []string{"s"},
		Description: fmt.Sprint(`
            app simulate --miner NAME
            app --config powchain.toml simulate --demo
	    `),
		Action: simulate,
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "miner, m",
				Usage: "name of the miner starting the round of transfers",
			},
			cli.IntFlag{
				Name:  "difficulty",
				Usage: "leading zero hex characters required in a block hash",
			},
			cli.BoolFlag{
				Name:  "demo",
				Usage: "give up after 100 attempts and pause 3s, like the original demo",
			},
		},
	},
	{
		Name:    "mine",
		Usage:   "Mine blocks until interrupted.",
		Aliases: []string{"m"},
		Action:  mine,
		Flags: []cli.Flag{
			cli.IntFlag{
				Name:  "difficulty",
				Usage: "leading zero hex characters required in a block hash",
			},
		},
	},
	{
		Name:      "hash",
		Usage:     "Compute the hash of a block from its fields.",
		ArgsUsage: "INDEX PREVHASH TIMESTAMP DATA NONCE",
		Action:    hashBlock,
		Flags: []cli.Flag{
			cli.IntFlag{
				Name:  "difficulty",
				Value: 2,
				Usage: "difficulty to check the hash against",
			},
		},
	},
}
