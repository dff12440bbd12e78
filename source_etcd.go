package configfile

import (
	"context"
	"fmt"
	"strings"
	"time"

	simplejson "github.com/bitly/go-simplejson"
	etcd "github.com/coreos/etcd/clientv3"
	"github.com/coreos/etcd/mvcc/mvccpb"

	"github.com/wjaoss/configfile/internal/logging"
)

// EtcdOption configures the Etcd source.
type EtcdOption struct {
	Prefix   string
	Username string
	Password string

	DialTimeout time.Duration
}

type etcdSource struct {
	config etcd.Config
	prefix string
}

func (s *etcdSource) Load(Settings) (*Tree, error) {
	c, err := etcd.New(s.config)
	if err != nil {
		return nil, fmt.Errorf("%w: etcd %s (%v)", ErrInvalidSource, strings.Join(s.config.Endpoints, ","), err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.DialTimeout)
	defer cancel()

	rsp, err := c.Get(ctx, s.prefix, etcd.WithPrefix(), etcd.WithSort(etcd.SortByKey, etcd.SortAscend))
	if err != nil {
		return nil, fmt.Errorf("%w: etcd %s (%v)", ErrInvalidSource, s.prefix, err)
	}

	if rsp == nil || len(rsp.Kvs) == 0 {
		return nil, fmt.Errorf("%w: etcd prefix %s", ErrNotExist, s.prefix)
	}

	return makeTree(rsp.Kvs, s.prefix)
}

// watch calls notify on every change under the prefix until ctx is done.
func (s *etcdSource) watch(ctx context.Context, notify func()) error {
	c, err := etcd.New(s.config)
	if err != nil {
		return fmt.Errorf("%w: etcd %s (%v)", ErrInvalidSource, strings.Join(s.config.Endpoints, ","), err)
	}
	defer c.Close()

	ch := c.Watch(ctx, s.prefix, etcd.WithPrefix())
	for {
		select {
		case <-ctx.Done():
			return nil
		case rsp, ok := <-ch:
			if !ok {
				return nil
			}
			if err := rsp.Err(); err != nil {
				logging.Warn().Err(err).Str("prefix", s.prefix).Msg("etcd watch")
				continue
			}
			if len(rsp.Events) > 0 {
				notify()
			}
		}
	}
}

// Etcd creates a source from the keys under a prefix. Keys are "/" separated
// paths: the last element is the option, the others are sections. A value
// holding a JSON object is imported as a section.
func Etcd(endpoints string, vars ...EtcdOption) Source {
	// default config
	var username, password, prefix string
	dialTimeout := time.Second * 5

	if len(vars) > 0 {
		username = vars[0].Username
		password = vars[0].Password
		prefix = vars[0].Prefix

		if vars[0].DialTimeout > 0 {
			dialTimeout = vars[0].DialTimeout
		}
	}

	addrs := strings.Split(endpoints, ",")
	if endpoints == "" {
		addrs = []string{"localhost:2379"}
	}

	return &etcdSource{
		config: etcd.Config{
			Endpoints:   addrs,
			DialTimeout: dialTimeout,
			Username:    username,
			Password:    password,
		},
		prefix: prefix,
	}
}

func makeTree(kvs []*mvccpb.KeyValue, stripPrefix string) (*Tree, error) {
	t := NewTree()

	for _, kv := range kvs {
		// remove prefix if non empty, and ensure leading / is removed as well
		key := strings.Trim(strings.TrimPrefix(string(kv.Key), stripPrefix), "/")
		if key == "" {
			continue
		}

		keys := strings.Split(key, "/")
		parent := t
		for _, k := range keys[:len(keys)-1] {
			parent = parent.Child(k)
		}
		name := keys[len(keys)-1]

		if j, err := simplejson.NewJson(kv.Value); err == nil {
			if m, err := j.Map(); err == nil {
				if err := fillTree(parent.Child(name), m, false); err != nil {
					return nil, err
				}
				continue
			}
		}

		parent.Set(name, string(kv.Value))
	}

	return t, nil
}
