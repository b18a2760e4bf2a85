// Copyright 2023-2024 daviszhen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.uber.org/zap"

	"github.com/colstore/colmerge/pkg/chunk"
	"github.com/colstore/colmerge/pkg/common"
	"github.com/colstore/colmerge/pkg/merge"
	"github.com/colstore/colmerge/pkg/tableio"
	"github.com/colstore/colmerge/pkg/util"
)

func init() {
	cobra.OnInitialize(loadConfig)
	initMergeCmd()
}

var mergeCfg = &util.Config{}

///root cmd

var info = "colmerge"
var RootCmd = &cobra.Command{
	Use:          "colmerge",
	Short:        info,
	Long:         info,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("use colmerge --help or -h")
	},
}

//merge cmd

var mergeInfo = "merge two sorted tables"
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: mergeInfo,
	Long:  mergeInfo,
	RunE: func(cmd *cobra.Command, args []string) error {
		initMergeCfg()
		return runMerge(mergeCfg)
	},
}

func initMergeCfg() {
	mergeCfg.Left.Path = viper.GetString("left.path")
	mergeCfg.Left.Format = viper.GetString("left.format")
	mergeCfg.Right.Path = viper.GetString("right.path")
	mergeCfg.Right.Format = viper.GetString("right.format")
	mergeCfg.Merge.Keys = viper.GetIntSlice("merge.keys")
	mergeCfg.Merge.Orders = viper.GetStringSlice("merge.orders")
	mergeCfg.Merge.NullsFirst = viper.GetBool("merge.nullsFirst")
	mergeCfg.Merge.Types = viper.GetStringSlice("merge.types")
	mergeCfg.Merge.Categorical = viper.GetIntSlice("merge.categorical")
	mergeCfg.Merge.CheckSorted = viper.GetBool("merge.checkSorted")
	mergeCfg.Output.Path = viper.GetString("output.path")
	mergeCfg.Output.NeedHeadLine = viper.GetBool("output.needHeadline")
	mergeCfg.Output.PrintSchema = viper.GetBool("output.printSchema")
	mergeCfg.Debug.ShowRaw = viper.GetBool("debug.showRaw")
	mergeCfg.Debug.PrintResult = viper.GetBool("debug.printResult")
	mergeCfg.Debug.Parallelism = viper.GetInt("debug.parallelism")
}

func initMergeCmd() {
	RootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().StringVar(&mergeCfg.Left.Path, "left_path", "", "left input file")
	mergeCmd.Flags().StringVar(&mergeCfg.Left.Format, "left_format", "csv", "left input format. csv, parquet")
	mergeCmd.Flags().StringVar(&mergeCfg.Right.Path, "right_path", "", "right input file")
	mergeCmd.Flags().StringVar(&mergeCfg.Right.Format, "right_format", "csv", "right input format. csv, parquet")
	mergeCmd.Flags().IntSliceVar(&mergeCfg.Merge.Keys, "keys", nil, "key column indices")
	mergeCmd.Flags().StringSliceVar(&mergeCfg.Merge.Orders, "orders", nil, "per key direction. asc, desc")
	mergeCmd.Flags().BoolVar(&mergeCfg.Merge.NullsFirst, "nulls_first", true, "nulls sort as smallest")
	mergeCmd.Flags().StringSliceVar(&mergeCfg.Merge.Types, "types", nil, "column types")
	mergeCmd.Flags().IntSliceVar(&mergeCfg.Merge.Categorical, "categorical", nil, "columns read as categorical")
	mergeCmd.Flags().BoolVar(&mergeCfg.Merge.CheckSorted, "check_sorted", false, "verify inputs are sorted before merging")
	mergeCmd.Flags().StringVar(&mergeCfg.Output.Path, "output_path", "", "merged result path")
	mergeCmd.Flags().BoolVar(&mergeCfg.Output.NeedHeadLine, "need_headline", true, "output headline in result")
	mergeCmd.Flags().BoolVar(&mergeCfg.Output.PrintSchema, "print_schema", false, "print result schema tree")
	mergeCmd.Flags().IntVar(&mergeCfg.Debug.Parallelism, "parallelism", 0, "worker count. 0 means GOMAXPROCS")

	viper.BindPFlag("left.path", mergeCmd.Flags().Lookup("left_path"))
	viper.BindPFlag("left.format", mergeCmd.Flags().Lookup("left_format"))
	viper.BindPFlag("right.path", mergeCmd.Flags().Lookup("right_path"))
	viper.BindPFlag("right.format", mergeCmd.Flags().Lookup("right_format"))
	viper.BindPFlag("merge.keys", mergeCmd.Flags().Lookup("keys"))
	viper.BindPFlag("merge.orders", mergeCmd.Flags().Lookup("orders"))
	viper.BindPFlag("merge.nullsFirst", mergeCmd.Flags().Lookup("nulls_first"))
	viper.BindPFlag("merge.types", mergeCmd.Flags().Lookup("types"))
	viper.BindPFlag("merge.categorical", mergeCmd.Flags().Lookup("categorical"))
	viper.BindPFlag("merge.checkSorted", mergeCmd.Flags().Lookup("check_sorted"))
	viper.BindPFlag("output.path", mergeCmd.Flags().Lookup("output_path"))
	viper.BindPFlag("output.needHeadline", mergeCmd.Flags().Lookup("need_headline"))
	viper.BindPFlag("output.printSchema", mergeCmd.Flags().Lookup("print_schema"))
	viper.BindPFlag("debug.parallelism", mergeCmd.Flags().Lookup("parallelism"))
}

var defCfgFilePaths = []string{".", "etc/colmerge"}
var cfgFileName = "colmerge.toml"

func loadConfig() {
	for _, dirPath := range defCfgFilePaths {
		fpath := filepath.Join(dirPath, cfgFileName)
		if util.FileIsValid(fpath) {
			if _, err := toml.DecodeFile(fpath, mergeCfg); err != nil {
				util.Error("load config file failed",
					zap.String("fpath", fpath),
					zap.Error(err))
				continue
			}
			viper.SetConfigFile(fpath)
			if err := viper.ReadInConfig(); err != nil {
				util.Error("viper load config file failed",
					zap.String("fpath", fpath),
					zap.Error(err))
			}
			break
		}
	}
}

func runMerge(cfg *util.Config) error {
	types, err := resolveTypes(cfg)
	if err != nil {
		return err
	}

	left, err := loadTable(&cfg.Left, types)
	if err != nil {
		return err
	}
	right, err := loadTable(&cfg.Right, types)
	if err != nil {
		return err
	}
	util.Info("loaded input tables",
		zap.Int("leftRows", left.RowCount()),
		zap.Int("rightRows", right.RowCount()))
	if cfg.Debug.ShowRaw {
		fmt.Println(chunk.SchemaString(left))
		fmt.Println(chunk.SchemaString(right))
	}

	keys := cfg.Merge.Keys
	orders, err := resolveOrders(cfg.Merge.Orders)
	if err != nil {
		return err
	}
	nullOrder := merge.OBNT_NULLS_LAST
	if cfg.Merge.NullsFirst {
		nullOrder = merge.OBNT_NULLS_FIRST
	}

	if cfg.Merge.CheckSorted {
		if !merge.IsSorted(left, keys, orders, nullOrder) {
			return fmt.Errorf("left table is not sorted under the given keys")
		}
		if !merge.IsSorted(right, keys, orders, nullOrder) {
			return fmt.Errorf("right table is not sorted under the given keys")
		}
	}

	para := cfg.Debug.Parallelism
	var merged *chunk.Table
	if para > 0 {
		merged, err = merge.MergeWithParallelism(left, right, keys, orders, nullOrder, para)
	} else {
		merged, err = merge.Merge(left, right, keys, orders, nullOrder)
	}
	if err != nil {
		return err
	}

	if cfg.Output.PrintSchema {
		fmt.Println(chunk.SchemaString(merged))
	}
	if cfg.Debug.PrintResult {
		for i := 0; i < merged.RowCount(); i++ {
			for j := 0; j < merged.ColumnCount(); j++ {
				fmt.Print(merged.GetValue(j, i), " ")
			}
			fmt.Println()
		}
	}
	if len(cfg.Output.Path) != 0 {
		if err = tableio.WriteCSV(cfg.Output.Path, merged, cfg.Output.NeedHeadLine, ','); err != nil {
			return err
		}
		util.Info("wrote merged table",
			zap.String("path", cfg.Output.Path),
			zap.Int("rows", merged.RowCount()))
	}
	return nil
}

func resolveTypes(cfg *util.Config) ([]common.LType, error) {
	if len(cfg.Merge.Types) == 0 {
		return nil, fmt.Errorf("no column types given")
	}
	types := make([]common.LType, 0, len(cfg.Merge.Types))
	for _, name := range cfg.Merge.Types {
		typ, err := common.ParseLTypeName(name)
		if err != nil {
			return nil, err
		}
		types = append(types, typ)
	}
	for _, j := range cfg.Merge.Categorical {
		if j < 0 || j >= len(types) {
			return nil, fmt.Errorf("categorical column %d out of range", j)
		}
		types[j] = common.CategoricalType()
	}
	return types, nil
}

func resolveOrders(names []string) ([]merge.OrderType, error) {
	orders := make([]merge.OrderType, 0, len(names))
	for _, name := range names {
		switch name {
		case "asc":
			orders = append(orders, merge.OT_ASC)
		case "desc":
			orders = append(orders, merge.OT_DESC)
		default:
			return nil, fmt.Errorf("invalid order direction %q", name)
		}
	}
	return orders, nil
}

func loadTable(in *util.InputTable, types []common.LType) (*chunk.Table, error) {
	switch in.Format {
	case "parquet":
		return tableio.ReadParquet(in.Path, types)
	case "csv", "":
		return tableio.ReadCSV(in.Path, types, ',')
	default:
		return nil, fmt.Errorf("usp format %q", in.Format)
	}
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
